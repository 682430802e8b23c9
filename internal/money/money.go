// Package money はルピア表示用の整形。
// 補助単位は表示しない（25000 → "Rp 25.000"）。
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// 桁区切りだけ付けた数値（id-ID）
func FormatNumber(amount int64) string {
	return printer.Sprintf("%d", amount)
}

func FormatRupiah(amount int64) string {
	return "Rp " + FormatNumber(amount)
}
