package model

// カートの明細。
// Item は追加時点のスナップショットで、カタログの価格が後で変わっても影響しない。
type CartEntry struct {
	Item     MenuItem
	Quantity int64
}

// 小計は常に 数量 × スナップショット価格 から計算する（保存しない）。
func (e CartEntry) LineTotal() int64 {
	return e.Quantity * e.Item.Price.Int64()
}
