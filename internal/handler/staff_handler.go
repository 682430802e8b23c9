package handler

import (
	"net/http"
	"strconv"
	"time"

	"kiosk/internal/config"
	"kiosk/internal/middleware"
	"kiosk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /staff のHTTP（PIN必須）
type StaffHandler struct {
	uc *usecase.StaffUsecase
}

// DI
func NewStaffHandler(uc *usecase.StaffUsecase) *StaffHandler {
	return &StaffHandler{uc: uc}
}

type LegacyPurchaseRequest struct {
	Purchase string `json:"purchase"`
}

type LogsResponse struct {
	Logs []string `json:"logs"`
}

// STAFF_PIN_HASH が無ければ登録しない
func (h *StaffHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	if cfg.StaffPINHash == "" {
		return
	}

	g := e.Group("/staff")
	g.Use(middleware.StaffPIN(cfg.StaffPINHash))

	g.POST("/purchase", h.purchase)
	g.GET("/logs", h.logs)
	g.GET("/receipts", h.receipts)
}

func (h *StaffHandler) purchase(c echo.Context) error {
	var req LegacyPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.LegacyPurchase(c.Request().Context(), req.Purchase); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

func (h *StaffHandler) logs(c echo.Context) error {
	return c.JSON(http.StatusOK, LogsResponse{Logs: h.uc.Logs()})
}

func (h *StaffHandler) receipts(c echo.Context) error {
	// limit（default 50）
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		offset = o
	}

	// from（RFC3339、この時刻以降）
	var from *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		from = &t
	}

	out, err := h.uc.Receipts(c.Request().Context(), usecase.ListReceiptsInput{
		SessionID: c.QueryParam("session_id"),
		From:      from,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
