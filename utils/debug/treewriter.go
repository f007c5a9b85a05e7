// Package debug contains helpers for human readable dumps of loaded
// recipe definitions.
package debug

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

// WithIndent changes string used for a single level of nesting.
func (tw *TreeWriter) WithIndent(indent string) *TreeWriter {
	tw.indent = indent
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Properties writes map entries one per line ordered naturally by key, so
// "size-2" goes before "size-10".
func (tw *TreeWriter) Properties(depth int, props map[string]string) {
	for _, k := range SortedKeys(props) {
		tw.TextBlock(depth, k, props[k])
	}
}

// SortedKeys returns map keys in natural order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		switch {
		case a == b:
			return 0
		case natural.Less(a, b):
			return -1
		default:
			return 1
		}
	})
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
