package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperCamel converts a lower-hyphen name ("customer-edit") to UpperCamel
// ("CustomerEdit"). The rest of each segment is lowercased, so
// "customerEDIT" becomes "Customeredit".
func UpperCamel(name string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, part := range strings.Split(name, "-") {
		b.WriteString(title.String(part))
	}
	return b.String()
}

// Capitalize upper-cases the first letter of a camelCase identifier and
// keeps the rest: "beforeInsert" becomes "BeforeInsert".
func Capitalize(name string) string {
	return mapFirst(name, unicode.ToUpper)
}

// LowerCamel lower-cases the first letter of an UpperCamel identifier.
func LowerCamel(name string) string {
	return mapFirst(name, unicode.ToLower)
}

func mapFirst(s string, f func(rune) rune) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = f(runes[0])
	return string(runes)
}

// LowerHyphen converts an UpperCamel name ("CustomerEdit") to lower-hyphen
// ("customer-edit").
func LowerHyphen(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
