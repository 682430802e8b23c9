package middleware

import (
	"errors"
	"net/http"
	"time"

	"kiosk/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey = "session_id" // string

	SessionCookieName = "kiosk_session"
	SessionTTL        = 12 * time.Hour
)

// キオスクセッションcookie（HS256のJWT、sub = セッションID）。
// 無い・壊れている・期限切れなら新しいセッションを発行する。
func KioskSession(cfg config.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.SessionSecret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				sid, _ = parseSession(ck.Value, secret)
			}

			//新規発行
			if sid == "" {
				sid = uuid.NewString()
				raw, err := issueSession(sid, secret, time.Now())
				if err != nil {
					return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
				}
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    raw,
					Path:     "/",
					MaxAge:   int(SessionTTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.IsProd(),
					SameSite: http.SameSiteLaxMode,
				})
			}

			//contextへ保存
			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}

// contextからセッションIDを取り出す
func SessionID(c echo.Context) (string, bool) {
	sid, ok := c.Get(CtxSessionIDKey).(string)
	return sid, ok && sid != ""
}

func issueSession(sid string, secret []byte, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": sid,
		"iat": now.Unix(),
		"exp": now.Add(SessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseSession(raw string, secret []byte) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid sub")
	}
	if _, err := uuid.Parse(sub); err != nil {
		return "", err
	}
	return sub, nil
}
