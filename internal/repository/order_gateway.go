package repository

import (
	"context"

	"kiosk/internal/domain/model"
)

// 注文サービスの約束。
// 複数明細の注文と、旧来の1行テキスト購入は別の契約として扱う。
type OrderGateway interface {
	// POST /api/purchase。成功ならサーバーの合計を返す。
	SubmitOrder(ctx context.Context, req model.OrderRequest) (int64, error)

	// POST /purchase
	SubmitLegacyPurchase(ctx context.Context, purchase string) error
}
