package cafeapi

import (
	"context"
	"net/http"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
)

type menuCatalog struct {
	c *Client
}

func NewMenuCatalog(c *Client) repo.MenuCatalog {
	return &menuCatalog{c: c}
}

func (m *menuCatalog) GetMenu(ctx context.Context) (model.Menu, error) {
	var menu model.Menu
	if _, err := m.c.doJSON(ctx, http.MethodGet, "/api/menu", nil, &menu); err != nil {
		return model.Menu{}, err
	}

	// サーバー側で失敗してもメニューだけは返ってくることがある
	if menu.Error != "" {
		m.c.log.WithField("error", menu.Error).Warn("menu served with error")
	}
	return menu, nil
}
