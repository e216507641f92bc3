package format

import (
	"fmt"
	"strings"
)

// Strings at or above this length without characters that force quoting
// are emitted as long bracket literals.
const longStringThreshold = 40

// WriteString serializes a string value as a Lua string literal. Short
// strings use the quote character that minimizes escaping, long multiline
// strings use bracket syntax with as many equals signs as needed to avoid
// closing themselves early.
func WriteString(value string) string {
	if value == "" {
		return "''"
	}

	if len(value) == 1 {
		switch value {
		case "'":
			return `"'"`
		case `"`:
			return `'"'`
		}
		r := rune(value[0])
		if needsEscaping(r) {
			return "'" + escapeRune(r) + "'"
		}
		return "'" + value + "'"
	}

	if len(value) < longStringThreshold || strings.ContainsFunc(value, needsQuoting) {
		return writeQuoted(value)
	}
	return writeLongBracket(value)
}

func needsEscaping(r rune) bool {
	return !(isGraphic(r) || r == ' ') || r == '\\'
}

func needsQuoting(r rune) bool {
	return !(isGraphic(r) || r == ' ' || r == '\n')
}

func isGraphic(r rune) bool {
	return r >= '!' && r <= '~'
}

func escapeRune(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\\':
		return `\\`
	case '\r':
		return `\r`
	case '\a':
		return `\a`
	case '\b':
		return `\b`
	case '\v':
		return `\v`
	case '\f':
		return `\f`
	}
	if r < 128 {
		return fmt.Sprintf(`\%d`, r)
	}
	return fmt.Sprintf(`\u{%x}`, r)
}

func writeQuoted(value string) string {
	var out strings.Builder
	out.Grow(len(value) + 2)

	quote := quoteSymbol(value)
	out.WriteRune(quote)
	for _, r := range value {
		switch {
		case r == quote:
			out.WriteByte('\\')
			out.WriteRune(quote)
		case needsEscaping(r):
			out.WriteString(escapeRune(r))
		default:
			out.WriteRune(r)
		}
	}
	out.WriteRune(quote)
	return out.String()
}

func quoteSymbol(value string) rune {
	if strings.ContainsRune(value, '"') {
		return '\''
	}
	if strings.ContainsRune(value, '\'') {
		return '"'
	}
	return '\''
}

func writeLongBracket(value string) string {
	level := 0
	if strings.HasSuffix(value, "]") {
		level = 1
	}
	for {
		equals := strings.Repeat("=", level)
		if !strings.Contains(value, "]"+equals+"]") {
			break
		}
		level++
	}
	equals := strings.Repeat("=", level)
	padding := ""
	if strings.HasPrefix(value, "\n") {
		padding = "\n"
	}
	return "[" + equals + "[" + padding + value + "]" + equals + "]"
}
