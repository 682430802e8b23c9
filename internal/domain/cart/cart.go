package cart

import (
	"errors"
	"sync"

	"kiosk/internal/domain/model"
)

var (
	// 空カートでは注文リクエストを作らない
	ErrEmptyCart = errors.New("cart empty")

	// 送信中に2回目の送信はしない
	ErrSubmissionInFlight = errors.New("submission in flight")

	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Cart はキオスク1セッション分のカート。
// 確定済みの明細（itemID → CartEntry）と、メニュー行ごとの仮数量（staged）を持つ。
// 各操作は mu の中で「読む→計算→書く」を1回で終える。
// 送信中（BeginSubmit〜EndSubmit）は変更系の操作がすべて ErrSubmissionInFlight を返す。
type Cart struct {
	mu sync.Mutex

	order   []int64 // 追加順（表示順を安定させる）
	entries map[int64]model.CartEntry
	staged  map[int64]int64

	submitting bool
}

func New() *Cart {
	return &Cart{
		entries: make(map[int64]model.CartEntry),
		staged:  make(map[int64]int64),
	}
}

// 仮数量を delta だけ動かす（0未満にはしない、上限はサーバー側）。
// 確定済みの明細には触らない。
func (c *Cart) SetQuantity(itemID int64, delta int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return c.staged[itemID], ErrSubmissionInFlight
	}
	return c.stageLocked(itemID, delta), nil
}

func (c *Cart) Staged(itemID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.staged[itemID]
}

// 仮数量 staged でカートに入れる。
// staged が0なら仮数量を1にするだけで false を返す（最初のタップは選択開始）。
// それ以外は明細を上書きして仮数量を0に戻す。
func (c *Cart) CommitToCart(item model.MenuItem, staged int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return false, ErrSubmissionInFlight
	}
	return c.commitLocked(item, staged)
}

// 現在の仮数量でカートに入れる。
func (c *Cart) CommitStaged(item model.MenuItem) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return false, ErrSubmissionInFlight
	}
	return c.commitLocked(item, c.staged[item.ID])
}

// おすすめからの1タップ追加。既存の数量に関係なく1にする（加算しない）。
func (c *Cart) QuickAdd(item model.MenuItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmissionInFlight
	}
	c.putLocked(item, 1)
	delete(c.staged, item.ID)
	return nil
}

// 確定数量を1減らす。0になったら明細ごと消す。
func (c *Cart) RemoveOrZero(itemID int64) (bool, error) {
	return c.AdjustQuantity(itemID, -1)
}

// 確定数量を delta だけ動かす。0以下になった明細は残さない。
// 明細が無ければ false。
func (c *Cart) AdjustQuantity(itemID int64, delta int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return false, ErrSubmissionInFlight
	}
	e, ok := c.entries[itemID]
	if !ok {
		return false, nil
	}

	q := e.Quantity + delta
	if q <= 0 {
		c.deleteLocked(itemID)
		return true, nil
	}
	e.Quantity = q
	c.entries[itemID] = e
	return true, nil
}

// 明細を消す
func (c *Cart) Remove(itemID int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return false, ErrSubmissionInFlight
	}
	if _, ok := c.entries[itemID]; !ok {
		return false, nil
	}
	c.deleteLocked(itemID)
	return true, nil
}

// 全部空にする（何回呼んでも同じ）
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmissionInFlight
	}
	c.clearLocked()
	return nil
}

// 合計 = 各明細の小計の和。空なら0。
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, e := range c.entries {
		total += e.LineTotal()
	}
	return total
}

// バッジ表示用の点数（数量の合計）
func (c *Cart) ItemCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// 追加順で明細のコピーを返す
func (c *Cart) Entries() []model.CartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.CartEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// 注文サービスに送る形にする。空カートはネットワークに出る前に ErrEmptyCart。
func (c *Cart) ToOrderRequest() (model.OrderRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		return model.OrderRequest{}, ErrEmptyCart
	}

	lines := make([]model.OrderLine, 0, len(c.order))
	for _, id := range c.order {
		e := c.entries[id]
		lines = append(lines, model.OrderLine{MenuID: id, Quantity: e.Quantity})
	}
	return model.OrderRequest{Orders: lines}, nil
}

// 送信結果を反映する。
// 成功ならカートを空にしてサーバーの合計を返す。失敗ならカートはそのまま。
func (c *Cart) ApplySubmissionResult(res model.SubmissionResult) (int64, error) {
	if !res.OK() {
		return 0, res.Err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	return res.Total, nil
}

// 送信開始。送信中なら ErrSubmissionInFlight。
func (c *Cart) BeginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmissionInFlight
	}
	c.submitting = true
	return nil
}

func (c *Cart) EndSubmit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitting = false
}

func (c *Cart) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.submitting
}

func (c *Cart) stageLocked(itemID int64, delta int64) int64 {
	q := c.staged[itemID] + delta
	if q <= 0 {
		delete(c.staged, itemID)
		return 0
	}
	c.staged[itemID] = q
	return q
}

func (c *Cart) commitLocked(item model.MenuItem, staged int64) (bool, error) {
	if staged < 0 {
		return false, ErrInvalidQuantity
	}
	if staged == 0 {
		c.stageLocked(item.ID, 1)
		return false, nil
	}

	c.putLocked(item, staged)
	delete(c.staged, item.ID)
	return true, nil
}

func (c *Cart) putLocked(item model.MenuItem, qty int64) {
	if _, ok := c.entries[item.ID]; !ok {
		c.order = append(c.order, item.ID)
	}
	c.entries[item.ID] = model.CartEntry{Item: item, Quantity: qty}
}

func (c *Cart) deleteLocked(itemID int64) {
	delete(c.entries, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) clearLocked() {
	c.entries = make(map[int64]model.CartEntry)
	c.staged = make(map[int64]int64)
	c.order = nil
}
