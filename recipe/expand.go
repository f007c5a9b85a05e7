package recipe

import (
	"errors"

	"go.uber.org/zap"

	"gvs/css"
)

// ErrNoSelfSelector is returned when selectors do not define generator for
// the Self state.
var ErrNoSelfSelector = errors.New(`selectors must define generator for self state "` + Self + `"`)

// Registrar receives generated global style rules. Every call adds one rule,
// duplicates are not detected.
type Registrar interface {
	Register(selector string, decl css.Declarations)
}

// RegisterFunc adapts ordinary function to Registrar.
type RegisterFunc func(selector string, decl css.Declarations)

// Register calls f(selector, decl).
func (f RegisterFunc) Register(selector string, decl css.Declarations) {
	f(selector, decl)
}

// Options describe global styles derived from a single recipe.
type Options struct {
	Recipe    Recipe
	Selectors Selectors  // Must contain Self
	Base      *Style     // Styles for the recipe base class, optional
	Compounds []Compound // Styles for variant combinations, applied in order
}

// Expander expands recipe styles into global style registrations.
type Expander struct {
	log *zap.Logger
}

// NewExpander creates a new Expander.
func NewExpander(log *zap.Logger) *Expander {
	if log == nil {
		log = zap.NewNop()
	}
	return &Expander{log: log.Named("expander")}
}

// Apply registers global styles described by opts with reg. Base styles are
// registered first under the recipe base class, then every compound in
// order under the selector of its variants. Compounds whose variants do not
// resolve to any class are skipped entirely. For every style self
// declarations come first, then declarations of each state in order.
//
// The only error is ErrNoSelfSelector, in that case nothing is registered.
func (e *Expander) Apply(opts Options, reg Registrar) error {
	if opts.Selectors[Self] == nil {
		return ErrNoSelfSelector
	}

	log := e.log.With(zap.String("recipe", opts.Recipe.BaseClass))

	var count int
	if opts.Base != nil {
		if sel := css.ClassSelector(opts.Recipe.BaseClass); sel != "" {
			count += e.applyStyle(opts.Selectors, sel, *opts.Base, reg, log)
		} else {
			log.Debug("Skipping base style, recipe has no base class")
		}
	}

	for i, c := range opts.Compounds {
		sel := BuildSelector(opts.Recipe.Variants, c.Variants)
		if sel == "" {
			log.Debug("Skipping compound style, variants do not resolve to classes", zap.Int("index", i))
			continue
		}
		count += e.applyStyle(opts.Selectors, sel, c.Style, reg, log)
	}

	log.Debug("Global styles applied", zap.Int("compounds", len(opts.Compounds)), zap.Int("registered", count))
	return nil
}

// applyStyle registers style under compound selector and returns number of
// registrations made.
func (e *Expander) applyStyle(selectors Selectors, compound string, style Style, reg Registrar, log *zap.Logger) int {
	var count int
	if !style.Declarations.IsEmpty() {
		reg.Register(selectors[Self](compound), style.Declarations)
		count++
	}

	for _, st := range style.States {
		if st.State == Self {
			log.Debug("Skipping nested self state", zap.String("compound", compound))
			continue
		}
		gen := selectors[st.State]
		if gen == nil {
			log.Debug("Skipping state without selector", zap.String("state", st.State), zap.String("compound", compound))
			continue
		}
		reg.Register(gen(compound), st.Style)
		count++
	}
	return count
}

// Apply registers global styles described by opts with reg using expander
// without logging.
func Apply(opts Options, reg Registrar) error {
	return NewExpander(nil).Apply(opts, reg)
}
