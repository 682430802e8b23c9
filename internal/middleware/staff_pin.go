package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const StaffPINHeader = "X-Staff-PIN"

// X-Staff-PIN をbcryptハッシュと比べる。スタッフ画面だけに付ける。
func StaffPIN(hash string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			pin := strings.TrimSpace(c.Request().Header.Get(StaffPINHeader))
			if pin == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
				return c.JSON(http.StatusForbidden, errorJSON("invalid pin"))
			}

			return next(c)
		}
	}
}
