package internal

import (
	"strings"
	"unicode"
)

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// InString renders value as a double-quoted script string
func InString(value string) string {
	return `"` + stringEscaper.Replace(value) + `"`
}

// IsIdentifierName reports whether value is a syntactically valid name,
// reserved words included
func IsIdentifierName(value string) bool {
	if value == "" {
		return false
	}
	for i, ch := range value {
		if i == 0 && !isIdentStart(ch) {
			return false
		}
		if !isIdentPart(ch) {
			return false
		}
	}
	return true
}

// IsValidIdentifier reports whether value can name a binding
func IsValidIdentifier(value string) bool {
	return IsIdentifierName(value) && !IsReserved(value)
}

// ToValidIdent replaces characters that cannot appear in an identifier
// with underscores and prefixes a leading digit
func ToValidIdent(value string) string {
	if value == "" {
		return string(CharUnderscore)
	}
	var sb strings.Builder
	for i, ch := range value {
		if !isIdentPart(ch) {
			sb.WriteRune(CharUnderscore)
			continue
		}
		if i == 0 && unicode.IsDigit(ch) {
			sb.WriteRune(CharUnderscore)
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// ToValidProperty renders name as an object key, quoting it when needed
func ToValidProperty(name string) string {
	if IsIdentifierName(name) {
		return name
	}
	return InString(name)
}

// JoinSpaces collapses every whitespace run into a single space
func JoinSpaces(value string) string {
	var sb strings.Builder
	space := false
	for _, ch := range value {
		if unicode.IsSpace(ch) {
			if !space {
				sb.WriteRune(CharSpace)
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(ch)
	}
	return sb.String()
}

// TitleCase turns "my-button" into "MyButton"
func TitleCase(value string) string {
	var sb strings.Builder
	upper := true
	for _, ch := range value {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(ch))
			upper = false
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// SnakeCase turns "MyButton" into "my_button"
func SnakeCase(value string) string {
	var sb strings.Builder
	prevLower := false
	for _, ch := range value {
		switch {
		case unicode.IsUpper(ch):
			if prevLower {
				sb.WriteRune(CharUnderscore)
			}
			sb.WriteRune(unicode.ToLower(ch))
			prevLower = false
		case unicode.IsLetter(ch) || unicode.IsDigit(ch):
			sb.WriteRune(ch)
			prevLower = true
		default:
			if sb.Len() > 0 && prevLower {
				sb.WriteRune(CharUnderscore)
			}
			prevLower = false
		}
	}
	return sb.String()
}
