package usecase

import (
	"context"
	"net/http"
	"sync"

	"kiosk/internal/domain/model"
	"kiosk/internal/money"
	repo "kiosk/internal/repository"

	"github.com/sirupsen/logrus"
)

type MenuUsecase struct {
	catalog repo.MenuCatalog
	log     logrus.FieldLogger

	mu    sync.RWMutex
	cache model.Menu
}

func NewMenuUsecase(catalog repo.MenuCatalog, log logrus.FieldLogger) *MenuUsecase {
	return &MenuUsecase{catalog: catalog, log: log}
}

type MenuItemView struct {
	model.MenuItem
	PriceLabel string `json:"price_label"`
}

type RecommendationView struct {
	model.RecommendationItem
	PriceLabel string `json:"price_label"`
}

type MenuOutput struct {
	AllMenu         []MenuItemView      `json:"all_menu"`
	LastPurchase    *RecommendationView `json:"last_purchase"`
	MostPopular     *RecommendationView `json:"most_popular"`
	HasMoodFeatures bool                `json:"has_mood_features"`
	CustomerID      *string             `json:"customer_id"`
}

// メニューとおすすめ枠を取得する。
// 商品が1件も無ければ 503（おすすめ枠も出さない）。
func (u *MenuUsecase) GetMenu(ctx context.Context) (MenuOutput, error) {
	menu, err := u.load(ctx)
	if err != nil {
		return MenuOutput{}, err
	}

	items := make([]MenuItemView, 0, len(menu.AllMenu))
	for _, it := range menu.AllMenu {
		items = append(items, MenuItemView{MenuItem: it, PriceLabel: money.FormatRupiah(it.Price.Int64())})
	}

	return MenuOutput{
		AllMenu:         items,
		LastPurchase:    toRecommendationView(menu.LastPurchase),
		MostPopular:     toRecommendationView(menu.MostPopular),
		HasMoodFeatures: menu.HasMoodFeatures,
		CustomerID:      menu.CustomerID,
	}, nil
}

// 直近に読み込んだメニューからIDで探す。未読み込みなら読み込む。
func (u *MenuUsecase) FindItem(ctx context.Context, id int64) (model.MenuItem, error) {
	if id <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	u.mu.RLock()
	cached := u.cache
	u.mu.RUnlock()

	if len(cached.AllMenu) == 0 {
		m, err := u.load(ctx)
		if err != nil {
			return model.MenuItem{}, err
		}
		cached = m
	}

	it, ok := cached.FindItem(id)
	if !ok {
		u.log.WithField("menu_id", id).Warn("menu item not found")
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	return it, nil
}

func (u *MenuUsecase) load(ctx context.Context) (model.Menu, error) {
	menu, err := u.catalog.GetMenu(ctx)
	if err != nil {
		u.log.WithError(err).Error("failed to load menu")
		return model.Menu{}, gatewayError(err, "failed to load menu")
	}
	if len(menu.AllMenu) == 0 {
		u.log.Warn("no menu items found")
		return model.Menu{}, NewHTTPError(http.StatusServiceUnavailable, "no menu items available")
	}

	u.mu.Lock()
	u.cache = menu
	u.mu.Unlock()

	return menu, nil
}

func toRecommendationView(r *model.RecommendationItem) *RecommendationView {
	if r == nil {
		return nil
	}
	return &RecommendationView{RecommendationItem: *r, PriceLabel: money.FormatRupiah(r.Price.Int64())}
}
