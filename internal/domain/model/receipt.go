package model

import "time"

// 確定した注文の控え（キオスク側のジャーナル）。
// 合計はサーバーが返した total を保存する。
type Receipt struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SessionID   string    `gorm:"type:varchar(36);not null;index" json:"session_id"`
	CustomerID  string    `gorm:"type:varchar(100);index" json:"customer_id"`
	Total       int64     `gorm:"not null" json:"total"`
	ClientTotal int64     `gorm:"not null" json:"client_total"`
	ItemCount   int64     `gorm:"not null" json:"item_count"`
	LinesJSON   string    `gorm:"type:text;not null" json:"lines_json"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}
