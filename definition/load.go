package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"gvs/css"
	"gvs/recipe"
)

// Loader reads definition files.
type Loader struct {
	log    *zap.Logger
	sep    string
	parser *css.Parser
}

// NewLoader creates loader. Separator is used to compile variant class
// names for groups which list values only.
func NewLoader(sep string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if len(sep) == 0 {
		sep = recipe.DefaultClassSeparator
	}
	return &Loader{
		log:    log.Named("definition"),
		sep:    sep,
		parser: css.NewParser(log),
	}
}

// Load reads and validates definition file.
func (l *Loader) Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read definition file: %w", err)
	}
	return l.Parse(data, path)
}

// Parse reads and validates definition from data. All problems found are
// reported at once.
func (l *Loader) Parse(data []byte, source string) (*File, error) {
	var raw rawFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unable to decode definition %s: %w", source, err)
	}
	if err := gencfg.Validate(&raw, gencfg.WithAdditionalChecks(uniqueNames)); err != nil {
		return nil, fmt.Errorf("bad definition %s: %w", source, err)
	}

	f := &File{Source: source, Version: raw.Version}

	var errs error
	for i := range raw.Recipes {
		r, err := l.convert(&raw.Recipes[i])
		if err != nil {
			for _, e := range multierr.Errors(err) {
				errs = multierr.Append(errs, fmt.Errorf("recipe %q: %w", raw.Recipes[i].Name, e))
			}
			continue
		}
		f.Recipes = append(f.Recipes, *r)
	}
	if errs != nil {
		return nil, fmt.Errorf("bad definition %s: %w", source, errs)
	}

	l.log.Debug("Definition loaded", zap.String("source", source), zap.Int("recipes", len(f.Recipes)))
	return f, nil
}

func (l *Loader) convert(raw *rawRecipe) (*Recipe, error) {
	var err error

	table, e := decodeVariants(&raw.Variants, raw.BaseClass, l.sep)
	err = multierr.Append(err, e)

	selectors, tags, sources, e := decodeSelectors(&raw.Selectors, raw.BaseClass, l.log.With(zap.String("recipe", raw.Name)))
	err = multierr.Append(err, e)

	r := &Recipe{
		Name: raw.Name,
		Options: recipe.Options{
			Recipe:    recipe.Recipe{BaseClass: raw.BaseClass, Variants: table},
			Selectors: selectors,
		},
		selectorTags: tags,
		selectorSrc:  sources,
	}

	if !isEmpty(&raw.Base) {
		base, e := decodeStyle(&raw.Base)
		err = multierr.Append(err, e)
		r.Options.Base = &base
	}

	for i := range raw.Compounds {
		c, e := l.convertCompound(&raw.Compounds[i])
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("compound %d: %w", i, e))
			continue
		}
		if recipe.BuildSelector(table, c.Variants) == "" {
			l.log.Warn("Compound matches no variant class and will be skipped",
				zap.String("recipe", raw.Name), zap.Int("compound", i), zap.Stringer("variants", c.Variants))
		}
		r.Options.Compounds = append(r.Options.Compounds, c)
	}

	// contract problems only make sense for structurally sound recipe
	if err != nil {
		return nil, err
	}
	if e := r.Options.Check(); e != nil {
		return nil, e
	}
	return r, nil
}

func (l *Loader) convertCompound(raw *rawCompound) (recipe.Compound, error) {
	var c recipe.Compound

	choices, err := decodeChoices(&raw.Variants)
	if err != nil {
		return c, err
	}
	c.Variants = choices

	switch {
	case len(raw.CSS) > 0 && !isEmpty(&raw.Style):
		return c, errors.New("style and css are mutually exclusive")
	case len(raw.CSS) > 0:
		props, err := l.parser.ParseDeclarations(raw.CSS)
		if err != nil {
			return c, err
		}
		c.Style.Properties = props
	default:
		if c.Style, err = decodeStyle(&raw.Style); err != nil {
			return c, err
		}
	}
	return c, nil
}
