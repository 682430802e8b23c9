package handler

import (
	"net/http"

	"kiosk/internal/config"
	"kiosk/internal/middleware"
	"kiosk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /kiosk のHTTP（タッチパネル画面が叩く）
type KioskHandler struct {
	menu        *usecase.MenuUsecase
	cart        *usecase.CartUsecase
	checkout    *usecase.CheckoutUsecase
	recognition *usecase.RecognitionUsecase
}

// DI
func NewKioskHandler(
	menu *usecase.MenuUsecase,
	cart *usecase.CartUsecase,
	checkout *usecase.CheckoutUsecase,
	recognition *usecase.RecognitionUsecase,
) *KioskHandler {
	return &KioskHandler{menu: menu, cart: cart, checkout: checkout, recognition: recognition}
}

type StageRequest struct {
	Delta int64 `json:"delta"`
}

// /kiosk/* を登録
func (h *KioskHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/kiosk")
	g.Use(middleware.KioskSession(cfg))

	g.GET("/status", h.status)
	g.POST("/skip", h.skip)
	g.GET("/menu", h.getMenu)

	g.GET("/cart", h.getCart)
	g.DELETE("/cart", h.clearCart)
	g.POST("/cart/items/:id/stage", h.stage)
	g.POST("/cart/items/:id/commit", h.commit)
	g.POST("/cart/items/:id/quick", h.quickAdd)
	g.POST("/cart/items/:id/decrement", h.decrement)
	g.DELETE("/cart/items/:id", h.removeItem)

	g.POST("/checkout", h.placeOrder)
}

func (h *KioskHandler) status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.recognition.Current())
}

func (h *KioskHandler) skip(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.recognition.Skip(c.Request().Context(), sid); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.recognition.Current())
}

func (h *KioskHandler) getMenu(c echo.Context) error {
	out, err := h.menu.GetMenu(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KioskHandler) getCart(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.cart.GetCart(c.Request().Context(), sid))
}

func (h *KioskHandler) stage(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := menuIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req StageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Delta == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "delta is required"})
	}

	out, err := h.cart.Stage(c.Request().Context(), sid, id, req.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KioskHandler) commit(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := menuIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.cart.Commit(c.Request().Context(), sid, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KioskHandler) quickAdd(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := menuIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.cart.QuickAddByID(c.Request().Context(), sid, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KioskHandler) decrement(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := menuIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.cart.Decrement(c.Request().Context(), sid, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KioskHandler) removeItem(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := menuIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.cart.RemoveItem(c.Request().Context(), sid, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KioskHandler) clearCart(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.cart.ClearCart(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KioskHandler) placeOrder(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.checkout.PlaceOrder(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
