package dto

import (
	"strings"
	"unicode"
)

// Slugify 标题转 slug：小写，连续的非字母数字字符合并为一个 "-"，去掉首尾的 "-"
// "My Title" -> "my-title"
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
