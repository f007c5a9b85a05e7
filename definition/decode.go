package definition

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"gvs/css"
	"gvs/recipe"
)

// statesKey introduces per state styles inside style block.
const statesKey = "selectors"

func nodeError(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

func isEmpty(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// pairs walks mapping node in document order.
func pairs(n *yaml.Node, fn func(key, value *yaml.Node) error) (err error) {
	if isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return nodeError(n, "mapping expected")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		err = multierr.Append(err, fn(n.Content[i], n.Content[i+1]))
	}
	return err
}

// scalarValue converts YAML scalar into variant value: booleans stay
// booleans, null is unset, everything else is used as written.
func scalarValue(n *yaml.Node) (recipe.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return recipe.Unset, nodeError(n, "scalar variant value expected")
	}
	switch n.Tag {
	case "!!null":
		return recipe.Unset, nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return recipe.Unset, nodeError(n, "bad boolean %q", n.Value)
		}
		return recipe.Bool(b), nil
	default:
		return recipe.String(n.Value), nil
	}
}

func scalarToken(n *yaml.Node) (string, error) {
	v, err := scalarValue(n)
	if err != nil {
		return "", err
	}
	tok, ok := v.Token()
	if !ok {
		return "", nodeError(n, "variant value may not be null")
	}
	return tok, nil
}

// decodeVariants reads variant groups. A group given as mapping lists
// explicit class names, a group given as sequence lists values which get
// class names compiled from base class.
func decodeVariants(n *yaml.Node, base, sep string) (recipe.Table, error) {
	table := make(recipe.Table)
	compiled := make(map[string][]string)

	err := pairs(n, func(k, v *yaml.Node) error {
		group := k.Value
		if _, exists := table[group]; exists {
			return nodeError(k, "duplicate variant group %q", group)
		}
		switch v.Kind {
		case yaml.MappingNode:
			values := make(map[string]string, len(v.Content)/2)
			table[group] = values
			return pairs(v, func(tk, cv *yaml.Node) error {
				token, err := scalarToken(tk)
				if err != nil {
					return err
				}
				if cv.Kind != yaml.ScalarNode || len(cv.Value) == 0 {
					return nodeError(cv, "class name for %s=%s must be non-empty string", group, token)
				}
				values[token] = cv.Value
				return nil
			})
		case yaml.SequenceNode:
			table[group] = nil
			var err error
			for _, item := range v.Content {
				token, e := scalarToken(item)
				if e != nil {
					err = multierr.Append(err, e)
					continue
				}
				compiled[group] = append(compiled[group], token)
			}
			return err
		default:
			return nodeError(v, "variant group %q must be mapping or sequence", group)
		}
	})

	if len(compiled) > 0 {
		if len(base) == 0 {
			err = multierr.Append(err, nodeError(n, "variant values without class names require base_class"))
		}
		generated, e := recipe.Compile(base, compiled, sep)
		if e != nil {
			err = multierr.Append(err, nodeError(n, "%v", e))
		}
		err = multierr.Append(err, checkExplicit(n, table, generated))
		for group, values := range generated {
			table[group] = values
		}
	}
	return table, err
}

// checkExplicit reports compiled class names which clash with class names
// given explicitly for other variant values.
func checkExplicit(n *yaml.Node, explicit, generated recipe.Table) (err error) {
	owners := make(map[string]string)
	for group, values := range explicit {
		for token, class := range values {
			owners[class] = group + "=" + token
		}
	}
	for _, group := range slices.Sorted(maps.Keys(generated)) {
		values := generated[group]
		for _, token := range slices.Sorted(maps.Keys(values)) {
			if owner, exists := owners[values[token]]; exists {
				err = multierr.Append(err, nodeError(n, "variant values %s and %s=%s share class %q", owner, group, token, values[token]))
			}
		}
	}
	return err
}

// decodeChoices reads compound variant selection preserving key order.
func decodeChoices(n *yaml.Node) (recipe.Choices, error) {
	var choices recipe.Choices
	err := pairs(n, func(k, v *yaml.Node) error {
		val, err := scalarValue(v)
		if err != nil {
			return err
		}
		choices = append(choices, recipe.Choice{Group: k.Value, Value: val})
		return nil
	})
	return choices, err
}

// decodeDeclarations reads property map with optional conditional at-rule
// blocks keyed by at-rule name and then by query.
func decodeDeclarations(n *yaml.Node) (css.Declarations, error) {
	var decl css.Declarations
	err := pairs(n, func(k, v *yaml.Node) error {
		return decodeEntry(&decl, k, v)
	})
	return decl, err
}

func decodeEntry(decl *css.Declarations, k, v *yaml.Node) error {
	name := k.Value
	if strings.HasPrefix(name, "@") {
		if !css.IsConditional(name) {
			return nodeError(k, "unsupported at-rule %q", name)
		}
		return pairs(v, func(qk, qv *yaml.Node) error {
			block, err := decodeDeclarations(qv)
			if err != nil {
				return err
			}
			decl.AtRules = append(decl.AtRules, css.AtRule{Name: strings.ToLower(name), Query: qk.Value, Block: block})
			return nil
		})
	}
	if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return nodeError(v, "property %q must have scalar value", name)
	}
	if decl.Properties == nil {
		decl.Properties = make(map[string]string)
	}
	decl.Properties[name] = v.Value
	return nil
}

// decodeStyle reads style block: declarations for the element itself plus
// per state declarations under "selectors" key.
func decodeStyle(n *yaml.Node) (recipe.Style, error) {
	var style recipe.Style
	err := pairs(n, func(k, v *yaml.Node) error {
		if k.Value != statesKey {
			return decodeEntry(&style.Declarations, k, v)
		}
		return pairs(v, func(sk, sv *yaml.Node) error {
			block, err := decodeDeclarations(sv)
			if err != nil {
				return err
			}
			style.States = append(style.States, recipe.StateStyle{State: sk.Value, Style: block})
			return nil
		})
	})
	return style, err
}
