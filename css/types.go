package css

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Conditional group at-rules which may be nested inside style declarations.
var conditionalAtRules = []string{"@media", "@supports", "@layer", "@container"}

// IsConditional returns true if name (with leading "@") is an at-rule which
// can wrap style declarations.
func IsConditional(name string) bool {
	return slices.Contains(conditionalAtRules, strings.ToLower(name))
}

// Declarations is a flat set of CSS properties with optional nested
// conditional at-rule blocks. Property values and at-rule conditions are
// opaque and kept exactly as supplied.
type Declarations struct {
	Properties map[string]string // Property name -> raw value
	AtRules    []AtRule          // Nested at-rule blocks in declaration order
}

// IsEmpty returns true if there is nothing to declare.
func (d Declarations) IsEmpty() bool {
	return len(d.Properties) == 0 && len(d.AtRules) == 0
}

// Clone returns a deep copy of declarations.
func (d Declarations) Clone() Declarations {
	out := Declarations{Properties: maps.Clone(d.Properties)}
	if len(d.AtRules) > 0 {
		out.AtRules = make([]AtRule, 0, len(d.AtRules))
		for _, ar := range d.AtRules {
			out.AtRules = append(out.AtRules, AtRule{Name: ar.Name, Query: ar.Query, Block: ar.Block.Clone()})
		}
	}
	return out
}

// AtRule is a conditional at-rule wrapping a block of declarations, e.g.
// "@media" with query "(min-width: 768px)".
type AtRule struct {
	Name  string // "@media", "@supports", "@layer" or "@container"
	Query string // Condition text, passed through verbatim
	Block Declarations
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   string            // Complete selector text
	Properties map[string]string // Property name -> raw value
}

// GetProperty returns the value for a property.
func (r Rule) GetProperty(name string) (string, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Block is a conditional at-rule with nested items.
type Block struct {
	Name  string
	Query string
	Items []StylesheetItem
}

// StylesheetItem is a single item in a stylesheet or a block.
// Exactly one of Rule or Block is non-nil.
type StylesheetItem struct {
	Rule  *Rule
	Block *Block
}

// Stylesheet represents an ordered CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// AddRule appends rule for selector built from declarations. Plain
// properties become a rule, every nested at-rule becomes a block wrapping the
// same selector. Nothing is appended for empty declarations.
func (s *Stylesheet) AddRule(selector string, decl Declarations) {
	s.Items = append(s.Items, declarationItems(selector, decl)...)
}

func declarationItems(selector string, decl Declarations) []StylesheetItem {
	var items []StylesheetItem
	if len(decl.Properties) > 0 {
		items = append(items, StylesheetItem{Rule: &Rule{Selector: selector, Properties: maps.Clone(decl.Properties)}})
	}
	for _, ar := range decl.AtRules {
		nested := declarationItems(selector, ar.Block)
		if len(nested) == 0 {
			continue
		}
		items = append(items, StylesheetItem{Block: &Block{Name: ar.Name, Query: ar.Query, Items: nested}})
	}
	return items
}

// Rules returns all top-level rules in source order.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// Blocks returns all top-level at-rule blocks in source order.
func (s *Stylesheet) Blocks() []Block {
	var blocks []Block
	for _, item := range s.Items {
		if item.Block != nil {
			blocks = append(blocks, *item.Block)
		}
	}
	return blocks
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

const defaultIndent = "  "

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	return s.Format(w, defaultIndent)
}

// Format writes the stylesheet to w using indent for every nesting level.
func (s *Stylesheet) Format(w io.Writer, indent string) (int64, error) {
	if indent == "" {
		indent = defaultIndent
	}
	n, err := writeItems(w, s.Items, indent, 0)
	return int64(n), err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeItems(w io.Writer, items []StylesheetItem, indent string, depth int) (int, error) {
	var total int
	for i, item := range items {
		var n int
		var err error

		switch {
		case item.Block != nil:
			n, err = writeBlock(w, item.Block, indent, depth)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, indent, depth)
		}

		total += n
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule, indent string, depth int) (int, error) {
	var total int
	prefix := strings.Repeat(indent, depth)
	n, err := fmt.Fprintf(w, "%s%s {\n", prefix, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, prefix+indent)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s}\n", prefix)
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]string, prefix string) (int, error) {
	var total int
	for _, name := range slices.Sorted(maps.Keys(props)) {
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", prefix, name, props[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeBlock writes a conditional at-rule block and its nested items.
func writeBlock(w io.Writer, b *Block, indent string, depth int) (int, error) {
	var total int
	prefix := strings.Repeat(indent, depth)

	head := b.Name
	if b.Query != "" {
		head += " " + b.Query
	}
	n, err := fmt.Fprintf(w, "%s%s {\n", prefix, head)
	total += n
	if err != nil {
		return total, err
	}

	n, err = writeItems(w, b.Items, indent, depth+1)
	total += n
	if err != nil {
		return total, err
	}

	n, err = fmt.Fprintf(w, "%s}\n", prefix)
	total += n
	return total, err
}
