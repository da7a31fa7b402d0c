package dto

import (
	"bytes"
	"encoding/json"
)

// NullableString 区分字段缺省、显式 null 与字符串值
type NullableString struct {
	Set   bool // JSON 中出现了该字段
	Valid bool // 值不是 null
	Value string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		n.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Cleared null 与空字符串都表示清空
func (n NullableString) Cleared() bool {
	return n.Set && (!n.Valid || n.Value == "")
}
