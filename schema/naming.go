package schema

import (
	"strings"
	"unicode"
)

// SnakeToCamel converts a snake_case table name to a CamelCase class
// name. Names that already carry no underscores keep their casing apart
// from the first letter.
func SnakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if part == "id" {
			parts[i] = "ID"
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, "")
}

// CamelToSnake converts a CamelCase column name to the snake_case field
// name Django expects.
func CamelToSnake(s string) string {
	if s == "ID" {
		return "id"
	}
	var res []rune
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rune(s[i-1])) || (i+1 < len(s) && unicode.IsLower(rune(s[i+1])))) {
				res = append(res, '_')
			}
			res = append(res, unicode.ToLower(r))
		} else if r == ' ' {
			res = append(res, '_')
		} else {
			res = append(res, r)
		}
	}
	return string(res)
}

// CamelToEnglish turns a CamelCase or snake_case identifier into spaced,
// title-cased words for verbose names: "OrderLineItem" -> "Order Line
// Item", "unit_price" -> "Unit Price".
func CamelToEnglish(s string) string {
	var spaced []rune
	for i, r := range s {
		if r == '_' {
			spaced = append(spaced, ' ')
			continue
		}
		if unicode.IsUpper(r) && i > 0 && unicode.IsLower(rune(s[i-1])) {
			spaced = append(spaced, ' ')
		}
		spaced = append(spaced, r)
	}
	words := strings.Fields(string(spaced))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
