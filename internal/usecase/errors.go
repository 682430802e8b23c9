package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	repo "kiosk/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// カフェAPIのエラーを画面向けに変換する。
// 業務エラーはサーバーのメッセージをそのまま、通信失敗は unavailableMsg。
func gatewayError(err error, unavailableMsg string) error {
	if re, ok := repo.AsRejected(err); ok {
		return NewHTTPError(http.StatusUnprocessableEntity, re.Message)
	}
	return NewHTTPError(http.StatusBadGateway, unavailableMsg)
}

var errSubmitting = NewHTTPError(http.StatusConflict, "order already in progress")

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}
