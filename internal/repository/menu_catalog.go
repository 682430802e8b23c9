package repository

import (
	"context"

	"kiosk/internal/domain/model"
)

// メニュー取得の約束（GET /api/menu）
type MenuCatalog interface {
	GetMenu(ctx context.Context) (model.Menu, error)
}
