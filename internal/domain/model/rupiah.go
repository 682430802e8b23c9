package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// ルピア（補助単位なし）の金額。
// カフェAPIは 25000 も 25000.0 も返すので、整数値の小数表記は受け付ける。
type Rupiah int64

// 2^53 を超える小数表記は整数に戻せない
const maxExactFloat = 1 << 53

func (r *Rupiah) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*r = Rupiah(i)
		return nil
	}

	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid rupiah amount %q: %w", n.String(), err)
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return fmt.Errorf("rupiah amount must be whole: %s", n.String())
	}
	*r = Rupiah(f)
	return nil
}

func (r Rupiah) Int64() int64 {
	return int64(r)
}
