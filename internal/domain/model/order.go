package model

// POST /api/purchase の明細1行
type OrderLine struct {
	MenuID   int64 `json:"menu_id"`
	Quantity int64 `json:"quantity"`
}

// POST /api/purchase のリクエスト
type OrderRequest struct {
	Orders []OrderLine `json:"orders"`
}

// 注文送信の結果。
// Err が nil なら成功で、Total はサーバーが確定した合計。
type SubmissionResult struct {
	Total int64
	Err   error
}

func (r SubmissionResult) OK() bool {
	return r.Err == nil
}
