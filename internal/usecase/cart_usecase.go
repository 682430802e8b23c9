package usecase

import (
	"context"
	"errors"
	"net/http"

	"kiosk/internal/domain/cart"
	"kiosk/internal/domain/model"
	"kiosk/internal/money"

	"github.com/sirupsen/logrus"
)

// メニューIDから商品を引く約束（MenuUsecase が実装）
type ItemFinder interface {
	FindItem(ctx context.Context, id int64) (model.MenuItem, error)
}

// カート操作。セッションごとのカートに対して行う。
type CartUsecase struct {
	sessions *SessionRegistry
	items    ItemFinder
	log      logrus.FieldLogger
}

func NewCartUsecase(sessions *SessionRegistry, items ItemFinder, log logrus.FieldLogger) *CartUsecase {
	return &CartUsecase{sessions: sessions, items: items, log: log}
}

type CartItemView struct {
	MenuID         int64  `json:"menu_id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	PriceLabel     string `json:"price_label"`
	Quantity       int64  `json:"quantity"`
	LineTotal      int64  `json:"line_total"`
	LineTotalLabel string `json:"line_total_label"`
}

type CartView struct {
	Items      []CartItemView `json:"items"`
	ItemCount  int64          `json:"item_count"`
	Total      int64          `json:"total"`
	TotalLabel string         `json:"total_label"`
	Visible    bool           `json:"visible"` // フローティングカートを出すか
	Submitting bool           `json:"submitting"`
}

type StageOutput struct {
	MenuID   int64    `json:"menu_id"`
	Staged   int64    `json:"staged"`
	Selected bool     `json:"selected"`
	Cart     CartView `json:"cart"`
}

type CommitOutput struct {
	Committed bool     `json:"committed"`
	Staged    int64    `json:"staged"`
	Message   string   `json:"message,omitempty"`
	Cart      CartView `json:"cart"`
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) CartView {
	return buildCartView(u.sessions.Cart(sessionID))
}

// 仮数量の +/-
func (u *CartUsecase) Stage(ctx context.Context, sessionID string, itemID int64, delta int64) (StageOutput, error) {
	if _, err := u.items.FindItem(ctx, itemID); err != nil {
		return StageOutput{}, err
	}

	c := u.sessions.Cart(sessionID)
	staged, err := c.SetQuantity(itemID, delta)
	if err != nil {
		return StageOutput{}, cartError(err)
	}
	return StageOutput{
		MenuID:   itemID,
		Staged:   staged,
		Selected: staged > 0,
		Cart:     buildCartView(c),
	}, nil
}

// 「Add to Cart」。仮数量0なら1にするだけ。
func (u *CartUsecase) Commit(ctx context.Context, sessionID string, itemID int64) (CommitOutput, error) {
	item, err := u.items.FindItem(ctx, itemID)
	if err != nil {
		return CommitOutput{}, err
	}

	c := u.sessions.Cart(sessionID)
	committed, err := c.CommitStaged(item)
	if err != nil {
		return CommitOutput{}, cartError(err)
	}

	out := CommitOutput{
		Committed: committed,
		Staged:    c.Staged(itemID),
		Cart:      buildCartView(c),
	}
	if committed {
		out.Message = item.Name + " added to cart!"
		u.log.WithFields(logrus.Fields{"session": sessionID, "menu_id": itemID}).Debug("committed to cart")
	}
	return out, nil
}

// おすすめからの1タップ追加（数量は1に上書き）
func (u *CartUsecase) QuickAddByID(ctx context.Context, sessionID string, itemID int64) (CartView, error) {
	item, err := u.items.FindItem(ctx, itemID)
	if err != nil {
		return CartView{}, err
	}

	c := u.sessions.Cart(sessionID)
	if err := c.QuickAdd(item); err != nil {
		return CartView{}, cartError(err)
	}
	u.log.WithFields(logrus.Fields{"session": sessionID, "menu_id": itemID}).Debug("quick add")
	return buildCartView(c), nil
}

// 確定数量を1減らす（0で明細削除）
func (u *CartUsecase) Decrement(ctx context.Context, sessionID string, itemID int64) (CartView, error) {
	c := u.sessions.Cart(sessionID)
	ok, err := c.RemoveOrZero(itemID)
	if err != nil {
		return CartView{}, cartError(err)
	}
	if !ok {
		return CartView{}, NewHTTPError(http.StatusNotFound, "not in cart")
	}
	return buildCartView(c), nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, itemID int64) (CartView, error) {
	c := u.sessions.Cart(sessionID)
	ok, err := c.Remove(itemID)
	if err != nil {
		return CartView{}, cartError(err)
	}
	if !ok {
		return CartView{}, NewHTTPError(http.StatusNotFound, "not in cart")
	}
	return buildCartView(c), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartView, error) {
	c := u.sessions.Cart(sessionID)
	if err := c.Clear(); err != nil {
		return CartView{}, cartError(err)
	}
	return buildCartView(c), nil
}

// カートのエラーを画面向けに変換する
func cartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrSubmissionInFlight):
		return errSubmitting
	case errors.Is(err, cart.ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	return err
}

func buildCartView(c *cart.Cart) CartView {
	entries := c.Entries()

	items := make([]CartItemView, 0, len(entries))
	var total, count int64
	for _, e := range entries {
		items = append(items, toCartItemView(e))
		total += e.LineTotal()
		count += e.Quantity
	}

	return CartView{
		Items:      items,
		ItemCount:  count,
		Total:      total,
		TotalLabel: money.FormatRupiah(total),
		Visible:    count > 0,
		Submitting: c.Submitting(),
	}
}

func toCartItemView(e model.CartEntry) CartItemView {
	return CartItemView{
		MenuID:         e.Item.ID,
		Name:           e.Item.Name,
		Price:          e.Item.Price.Int64(),
		PriceLabel:     money.FormatRupiah(e.Item.Price.Int64()),
		Quantity:       e.Quantity,
		LineTotal:      e.LineTotal(),
		LineTotalLabel: money.FormatRupiah(e.LineTotal()),
	}
}
