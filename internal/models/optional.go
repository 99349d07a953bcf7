package models

import (
	"bytes"
	"encoding/json"
)

// Optional は部分更新リクエストのフィールドを表します。
// JSONにキーが無い場合 (未指定) と、明示的に null が送られた場合を区別します。
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some は値がセットされたOptionalを返します。
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null は明示的に null が指定されたOptionalを返します。
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet はフィールドがリクエストに含まれていたかどうかを返します (null を含む)。
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull はフィールドに明示的に null が指定されたかどうかを返します。
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get は値を返します。未指定または null の場合 ok は false です。
func (o Optional[T]) Get() (v T, ok bool) {
	if !o.set || o.null {
		return v, false
	}
	return o.value, true
}

// IsZero は未指定のOptionalを `omitzero` で省略させるためのものです。
func (o Optional[T]) IsZero() bool { return !o.set }

// UnmarshalJSON はキーが存在した時だけ呼ばれるため、呼ばれた時点で set になります。
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value = zero
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON は未指定または null の場合に null を書き出します。
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
