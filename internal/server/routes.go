package server

import (
	"kiosk/internal/config"
	"kiosk/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health *handler.HealthHandler
	Kiosk  *handler.KioskHandler
	Mood   *handler.MoodHandler
	Staff  *handler.StaffHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Health.RegisterRoutes(e)
	h.Kiosk.RegisterRoutes(e, cfg)
	h.Mood.RegisterRoutes(e, cfg)
	h.Staff.RegisterRoutes(e, cfg)
}
