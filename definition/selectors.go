package definition

import (
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"gvs/css"
	"gvs/recipe"
)

// Placeholder replaced by compound selector in plain selector text.
const placeholder = "&"

// SelectorData is available to selector templates.
type SelectorData struct {
	Selector string // compound class selector, e.g. ".btn_size_sm"
	Base     string // recipe base class selector, e.g. ".btn"
}

// sampleSelector is used to test-execute templates when loading.
const sampleSelector = ".sample"

// newSelectorFunc compiles selector source into generator. Text with
// template actions is executed as Go template with slim-sprig functions,
// any other text has every placeholder replaced. Surrounding whitespace is
// dropped in both cases.
func newSelectorFunc(tag, src, base string, log *zap.Logger) (recipe.SelectorFunc, error) {
	if !strings.Contains(src, "{{") {
		src = strings.TrimSpace(src)
		return func(compound string) string {
			return strings.ReplaceAll(src, placeholder, compound)
		}, nil
	}

	tmpl, err := template.New(tag).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, err
	}
	data := SelectorData{Base: css.ClassSelector(base)}

	render := func(compound string) (string, error) {
		var sb strings.Builder
		d := data
		d.Selector = compound
		if err := tmpl.Execute(&sb, d); err != nil {
			return "", err
		}
		return strings.TrimSpace(sb.String()), nil
	}
	if _, err := render(sampleSelector); err != nil {
		return nil, err
	}

	return func(compound string) string {
		out, err := render(compound)
		if err != nil {
			// template already succeeded once, so this is data dependent
			log.Error("Unable to render selector, using compound selector as is",
				zap.String("state", tag), zap.String("compound", compound), zap.Error(err))
			return compound
		}
		return out
	}, nil
}

// decodeSelectors reads state selector sources in file order.
func decodeSelectors(n *yaml.Node, base string, log *zap.Logger) (recipe.Selectors, []string, map[string]string, error) {
	var (
		selectors = make(recipe.Selectors)
		tags      []string
		sources   = make(map[string]string)
	)
	err := pairs(n, func(k, v *yaml.Node) error {
		tag := k.Value
		if _, exists := selectors[tag]; exists {
			return nodeError(k, "duplicate state %q", tag)
		}
		if v.Kind != yaml.ScalarNode || len(strings.TrimSpace(v.Value)) == 0 {
			return nodeError(v, "selector for state %q must be non-empty string", tag)
		}
		fn, err := newSelectorFunc(tag, v.Value, base, log)
		if err != nil {
			return nodeError(v, "bad selector template for state %q: %v", tag, err)
		}
		selectors[tag] = fn
		tags = append(tags, tag)
		sources[tag] = v.Value
		return nil
	})
	return selectors, tags, sources, err
}
