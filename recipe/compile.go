package recipe

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"
)

// DefaultClassSeparator joins parts of compiled class names.
const DefaultClassSeparator = "_"

// CompileClass returns deterministic class name for a variant value of the
// recipe with base class, e.g. "btn_size_sm".
func CompileClass(base, group, token, sep string) string {
	if sep == "" {
		sep = DefaultClassSeparator
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{base, group, token} {
		if s := slug.Make(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// Compile builds variant table for recipe with base class where groups list
// value tokens of every variant group. Slugs drop case and punctuation, so
// distinct values may end up with the same class name; every such collision
// is reported as error since compound selectors could not tell them apart.
func Compile(base string, groups map[string][]string, sep string) (Table, error) {
	table := make(Table, len(groups))
	owners := make(map[string]string)

	var err error
	for _, group := range slices.Sorted(maps.Keys(groups)) {
		values := make(map[string]string, len(groups[group]))
		for _, token := range groups[group] {
			class := CompileClass(base, group, token, sep)
			owner := group + "=" + token
			if prev, exists := owners[class]; exists && prev != owner {
				err = multierr.Append(err, fmt.Errorf("variant values %s and %s compile to the same class %q", prev, owner, class))
				continue
			}
			owners[class] = owner
			values[token] = class
		}
		table[group] = values
	}
	return table, err
}
