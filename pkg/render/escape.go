package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Every emitter routes user-supplied text through these helpers; no other
// package quotes or escapes source text.

var textPolicy = bluemonday.StrictPolicy()

var singleQuoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

var jsxBraceReplacer = strings.NewReplacer(
	"{", "{'{'}",
	"}", "{'}'}",
)

// QuoteString returns s as a single-quoted TypeScript string literal.
func QuoteString(s string) string {
	return "'" + singleQuoteReplacer.Replace(s) + "'"
}

// JSXText prepares s for use as JSX child text: markup is stripped, the
// remaining text is entity-encoded, and braces are wrapped as expressions.
func JSXText(s string) string {
	cleaned := textPolicy.Sanitize(s)
	return jsxBraceReplacer.Replace(cleaned)
}

// JSXAttribute prepares s for a double-quoted JSX attribute value.
func JSXAttribute(s string) string {
	return textPolicy.Sanitize(s)
}

// CommentText makes s safe inside a block comment.
func CommentText(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
