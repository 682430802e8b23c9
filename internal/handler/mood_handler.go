package handler

import (
	"net/http"

	"kiosk/internal/config"
	"kiosk/internal/middleware"
	"kiosk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /kiosk/mood のHTTP
type MoodHandler struct {
	uc *usecase.MoodUsecase
}

// DI
func NewMoodHandler(uc *usecase.MoodUsecase) *MoodHandler {
	return &MoodHandler{uc: uc}
}

type MoodRequest struct {
	UserInput string `json:"user_input"`
}

func (h *MoodHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/kiosk/mood")
	g.Use(middleware.KioskSession(cfg))

	g.GET("/presets", h.presets)
	g.POST("", h.recommend)
	g.POST("/presets/:key", h.recommendPreset)
	g.POST("/items/:id/add", h.addSuggestion)
}

func (h *MoodHandler) presets(c echo.Context) error {
	out, err := h.uc.Presets(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MoodHandler) recommend(c echo.Context) error {
	var req MoodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Recommend(c.Request().Context(), req.UserInput)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MoodHandler) recommendPreset(c echo.Context) error {
	out, err := h.uc.RecommendPreset(c.Request().Context(), c.Param("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MoodHandler) addSuggestion(c echo.Context) error {
	sid, ok := sessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := menuIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.AddSuggestion(c.Request().Context(), sid, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
