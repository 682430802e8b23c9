package model

// ムードからのおすすめ1件
type MoodRecommendation struct {
	RecommendedItemID int64     `json:"recommended_item_id"`
	Confidence        int       `json:"confidence"`
	Reason            string    `json:"reason"`
	Alternative       *int64    `json:"alternative"`
	MenuItem          *MenuItem `json:"menu_item"`
	AlternativeItem   *MenuItem `json:"alternative_item,omitempty"`
	IsFallback        bool      `json:"is_fallback,omitempty"`
}

// プリセット利用時にサーバーが付ける情報
type MoodPresetUsed struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// POST /api/mood-recommendation のレスポンス
type MoodResponse struct {
	Success        bool                `json:"success"`
	Recommendation *MoodRecommendation `json:"recommendation,omitempty"`
	PresetUsed     *MoodPresetUsed     `json:"preset_used,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// GET /api/mood-presets のレスポンス
type MoodPresets struct {
	Success bool              `json:"success"`
	Presets map[string]string `json:"presets"`
}
