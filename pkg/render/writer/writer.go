// Package writer builds indented source text line by line. Emitters use it to
// pre-render the repeated sections (schema properties, field blocks) that
// their templates splice into fixed skeletons.
package writer

import (
	"fmt"
	"strings"
)

// DefaultIndent matches the two-space style of the generated TypeScript.
const DefaultIndent = "  "

// Writer accumulates lines with a running indentation prefix.
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// New creates a writer using indent for each level. Empty indent falls back
// to DefaultIndent.
func New(indent string) *Writer {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Writer{
		indentString: indent,
		needsIndent:  true,
	}
}

// Indent increases the indentation level.
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// IndentBy increases the indentation level n times.
func (w *Writer) IndentBy(n int) {
	for i := 0; i < n; i++ {
		w.Indent()
	}
}

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes s without a newline.
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without a newline.
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes s followed by a newline.
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted line.
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// WriteLines writes every line of text at the current indentation.
func (w *Writer) WriteLines(text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if line == "" {
			w.Newline()
			continue
		}
		w.WriteLine(line)
	}
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless one is already present.
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.Newline()
	}
}

// WriteBlock writes opener, the indented content, then closer.
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteComment writes a single-line comment.
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("// %s", comment)
}

// IndentLevel returns the current indentation level.
func (w *Writer) IndentLevel() int {
	return w.indentLevel
}

// Len reports the number of bytes written.
func (w *Writer) Len() int {
	return w.sb.Len()
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.sb.String()
}

// Reset clears content and indentation.
func (w *Writer) Reset() {
	w.sb.Reset()
	w.indentLevel = 0
	w.linePrefix = ""
	w.needsIndent = true
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}
