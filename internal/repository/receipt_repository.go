package repository

import (
	"context"
	"time"

	"kiosk/internal/domain/model"
)

// 控えの絞り込み条件
type ReceiptFilter struct {
	SessionID   *string
	CreatedFrom *time.Time
	Limit       int
	Offset      int
}

// 注文控えの保存・一覧取得の約束。
type ReceiptRepository interface {
	Create(ctx context.Context, r model.Receipt) error
	List(ctx context.Context, filter ReceiptFilter) ([]model.Receipt, error)
}
