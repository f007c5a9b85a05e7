package recipe

import (
	"strings"

	"gvs/css"
)

// Table maps variant group name to value token to generated class name.
// Boolean groups use "true" and "false" as value tokens.
type Table map[string]map[string]string

// Class returns class name for group and value token.
func (t Table) Class(group, token string) (string, bool) {
	values, ok := t[group]
	if !ok {
		return "", false
	}
	class, ok := values[token]
	return class, ok
}

// Choice selects value for a single variant group.
type Choice struct {
	Group string
	Value Value
}

// Choices is an ordered set of variant choices, order is kept in built
// selectors.
type Choices []Choice

// BuildSelector returns compound class selector matching all chosen variants
// at once, e.g. ".sizeSm.colorPrimary". Unset values, groups absent from the
// table and unknown values contribute nothing. Returns empty string when no
// choice resolved to a class.
func BuildSelector(table Table, choices Choices) string {
	var sb strings.Builder
	for _, c := range choices {
		token, ok := c.Value.Token()
		if !ok {
			continue
		}
		class, ok := table.Class(c.Group, token)
		if !ok {
			continue
		}
		sb.WriteString(css.ClassSelector(class))
	}
	return sb.String()
}

// String implements fmt.Stringer, e.g. "size=sm tone=<unset>".
func (c Choices) String() string {
	parts := make([]string, 0, len(c))
	for _, ch := range c {
		parts = append(parts, ch.Group+"="+ch.Value.String())
	}
	return strings.Join(parts, " ")
}
