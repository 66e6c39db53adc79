// Package parsing substitutes ${name} placeholders in configuration text.
package parsing

import "strings"

// TokenHandler replaces the content of one token.
type TokenHandler interface {
	HandleToken(content string) string
}

// TokenHandlerFunc adapts a function to TokenHandler.
type TokenHandlerFunc func(content string) string

func (f TokenHandlerFunc) HandleToken(content string) string { return f(content) }

// TokenParser finds tokens delimited by Open and Close and replaces each one
// with the handler's result. A backslash before Open emits Open literally;
// a backslash before Close inside a token makes Close part of the content.
// A token without a closing delimiter is kept verbatim.
type TokenParser struct {
	Open    string
	Close   string
	Handler TokenHandler
}

// NewTokenParser creates a parser for the given delimiters.
func NewTokenParser(openToken, closeToken string, handler TokenHandler) *TokenParser {
	return &TokenParser{Open: openToken, Close: closeToken, Handler: handler}
}

func (p *TokenParser) Parse(text string) string {
	if text == "" {
		return ""
	}
	start := strings.Index(text, p.Open)
	if start < 0 {
		return text
	}

	var out, expr strings.Builder
	offset := 0
	for start >= 0 {
		if start > 0 && text[start-1] == '\\' {
			out.WriteString(text[offset : start-1])
			out.WriteString(p.Open)
			offset = start + len(p.Open)
		} else {
			expr.Reset()
			out.WriteString(text[offset:start])
			offset = start + len(p.Open)

			end := indexFrom(text, p.Close, offset)
			for end >= 0 {
				if end <= offset || text[end-1] != '\\' {
					expr.WriteString(text[offset:end])
					break
				}
				expr.WriteString(text[offset : end-1])
				expr.WriteString(p.Close)
				offset = end + len(p.Close)
				end = indexFrom(text, p.Close, offset)
			}

			if end < 0 {
				out.WriteString(text[start:])
				offset = len(text)
			} else {
				out.WriteString(p.Handler.HandleToken(expr.String()))
				offset = end + len(p.Close)
			}
		}
		start = indexFrom(text, p.Open, offset)
	}
	if offset < len(text) {
		out.WriteString(text[offset:])
	}
	return out.String()
}

// indexFrom is strings.Index starting at from, returning an index into s.
func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i < 0 {
		return -1
	}
	return from + i
}
