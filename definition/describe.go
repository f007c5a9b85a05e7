package definition

import (
	"gvs/css"
	"gvs/recipe"
	"gvs/utils/debug"
)

// Describe returns human readable tree of all loaded definitions.
func (f *File) Describe() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "definition %s (version %d)", f.Source, f.Version)
	for i := range f.Recipes {
		f.Recipes[i].describe(tw, 1)
	}
	return tw.String()
}

func (r *Recipe) describe(tw *debug.TreeWriter, depth int) {
	opts := &r.Options

	tw.Line(depth, "recipe %s", r.Name)
	tw.TextBlock(depth+1, "base_class", opts.Recipe.BaseClass)

	if len(opts.Recipe.Variants) > 0 {
		tw.Line(depth+1, "variants")
		for _, group := range debug.SortedKeys(opts.Recipe.Variants) {
			tw.Line(depth+2, "%s", group)
			tw.Properties(depth+3, opts.Recipe.Variants[group])
		}
	}

	tw.Line(depth+1, "selectors")
	for _, tag := range r.selectorTags {
		tw.TextBlock(depth+2, tag, r.selectorSrc[tag])
	}

	if opts.Base != nil {
		tw.Line(depth+1, "base %s", css.ClassSelector(opts.Recipe.BaseClass))
		describeStyle(tw, depth+2, *opts.Base)
	}

	if len(opts.Compounds) > 0 {
		tw.Line(depth+1, "compounds")
		for i, c := range opts.Compounds {
			sel := recipe.BuildSelector(opts.Recipe.Variants, c.Variants)
			if len(sel) == 0 {
				sel = "(never matches)"
			}
			tw.Line(depth+2, "[%d] %s", i, sel)
			for _, ch := range c.Variants {
				tw.Line(depth+3, "%s=%s", ch.Group, ch.Value)
			}
			describeStyle(tw, depth+3, c.Style)
		}
	}
}

func describeStyle(tw *debug.TreeWriter, depth int, style recipe.Style) {
	describeDeclarations(tw, depth, style.Declarations)
	for _, st := range style.States {
		tw.Line(depth, "state %s", st.State)
		describeDeclarations(tw, depth+1, st.Style)
	}
}

func describeDeclarations(tw *debug.TreeWriter, depth int, decl css.Declarations) {
	tw.Properties(depth, decl.Properties)
	for _, ar := range decl.AtRules {
		tw.Line(depth, "%s %s", ar.Name, ar.Query)
		describeDeclarations(tw, depth+1, ar.Block)
	}
}
