package utils

import (
	"bytes"
	"encoding/json"
)

// Optional 用于 PATCH 请求：Set 为 false 表示字段缺省，Set 为 true 且 Value 为 nil 表示显式置空
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some 构造一个已设置的值
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null 构造显式置空
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON 字段出现在请求体中时才会被调用，null 也会走到这里
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Apply 已设置时写入目标字段
func (o Optional[T]) Apply(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}
