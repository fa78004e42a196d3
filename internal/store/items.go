package store

import "strings"

const itemsDelimiter = ','

// EncodeItems joins food item names with commas. Backslashes and commas
// inside a name are escaped so DecodeItems restores the exact list.
func EncodeItems(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte(itemsDelimiter)
		}
		for _, r := range item {
			if r == '\\' || r == itemsDelimiter {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func DecodeItems(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	items := make([]string, 0, strings.Count(encoded, string(itemsDelimiter))+1)
	var cur strings.Builder
	escaped := false
	for _, r := range encoded {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == itemsDelimiter:
			items = append(items, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(items, cur.String())
}
