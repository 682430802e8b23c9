package repository

import (
	"errors"
	"fmt"
)

// カフェAPIに届かない（接続失敗・タイムアウト・読めないレスポンス）
var ErrUnavailable = errors.New("cafe api unavailable")

// サーバーが業務エラーとして断った（error フィールド付きのレスポンス）
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (%d): %s", e.Status, e.Message)
}

func AsRejected(err error) (*RejectedError, bool) {
	var re *RejectedError
	ok := errors.As(err, &re)
	return re, ok
}
