// Package definition loads recipe definition files: YAML documents which
// describe components, their variant classes, state selectors and the
// global styles to generate for them.
package definition

import (
	"fmt"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"gvs/recipe"
)

// Recipe is a single loaded definition ready to be applied.
type Recipe struct {
	Name    string
	Options recipe.Options

	// selector sources in file order, kept for describe
	selectorTags []string
	selectorSrc  map[string]string
}

// SelectorSource returns template text state selector was built from.
func (r *Recipe) SelectorSource(tag string) (string, bool) {
	src, ok := r.selectorSrc[tag]
	return src, ok
}

// SelectorTags returns state tags in the order they appear in the file.
func (r *Recipe) SelectorTags() []string {
	return r.selectorTags
}

// File is a loaded definition file.
type File struct {
	Source  string
	Version int
	Recipes []Recipe
}

// Recipe returns recipe by name.
func (f *File) Recipe(name string) (*Recipe, bool) {
	for i := range f.Recipes {
		if f.Recipes[i].Name == name {
			return &f.Recipes[i], true
		}
	}
	return nil, false
}

// Raw file layout. Parts which depend on key order or on value kind are
// kept as nodes and converted later.
type (
	rawCompound struct {
		Variants yaml.Node `yaml:"variants" validate:"-"`
		Style    yaml.Node `yaml:"style" validate:"-"`
		CSS      string    `yaml:"css"`
	}

	rawRecipe struct {
		Name      string        `yaml:"name" validate:"required,max=64"`
		BaseClass string        `yaml:"base_class" validate:"omitempty,max=128"`
		Variants  yaml.Node     `yaml:"variants" validate:"-"`
		Selectors yaml.Node     `yaml:"selectors" validate:"-"`
		Base      yaml.Node     `yaml:"base" validate:"-"`
		Compounds []rawCompound `yaml:"compounds" validate:"dive"`
	}

	rawFile struct {
		Version int         `yaml:"version" validate:"eq=1"`
		Recipes []rawRecipe `yaml:"recipes" validate:"required,min=1,dive"`
	}
)

// uniqueNames is struct level check making sure recipes can be told apart.
func uniqueNames(sl validator.StructLevel) {
	f, ok := sl.Current().Interface().(rawFile)
	if !ok {
		return
	}
	seen := make(map[string]int, len(f.Recipes))
	for i, r := range f.Recipes {
		if _, exists := seen[r.Name]; exists && len(r.Name) > 0 {
			sl.ReportError(f.Recipes[i].Name, fmt.Sprintf("Recipes[%d].Name", i), "Name", "unique", r.Name)
			continue
		}
		seen[r.Name] = i
	}
}
