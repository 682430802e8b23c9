package model

// メニュー1件（/api/menu の all_menu の要素）
// 価格はルピア（補助単位なし）の整数。
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Rupiah `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	MoodTags    string `json:"mood_tags,omitempty"`
}

// おすすめ枠（前回購入 / 人気）の1件。
// 前回購入なら LastPurchased と LastQuantity、人気なら TotalOrders が入る。
type RecommendationItem struct {
	MenuItem

	LastPurchased string `json:"last_purchased,omitempty"`
	LastQuantity  int64  `json:"last_quantity,omitempty"`
	TotalOrders   int64  `json:"total_orders,omitempty"`
	TotalQuantity int64  `json:"total_quantity,omitempty"`
}

// GET /api/menu のレスポンス
type Menu struct {
	AllMenu         []MenuItem          `json:"all_menu"`
	LastPurchase    *RecommendationItem `json:"last_purchase"`
	MostPopular     *RecommendationItem `json:"most_popular"`
	HasMoodFeatures bool                `json:"has_mood_features"`
	CustomerID      *string             `json:"customer_id,omitempty"`
	Error           string              `json:"error,omitempty"`
}

// IDでメニューを探す
func (m Menu) FindItem(id int64) (MenuItem, bool) {
	for _, it := range m.AllMenu {
		if it.ID == id {
			return it, true
		}
	}
	return MenuItem{}, false
}
