// Package recipe expands styles of a style variant recipe into global style
// rules.
//
// A recipe is compiled elsewhere into a base class and a table of variant
// classes. Given selector generators for the element itself (Self) and for
// any number of other states, Apply turns base styles and styles of variant
// combinations into (selector, declarations) pairs handed to a Registrar:
//
//	err := recipe.Apply(recipe.Options{
//		Recipe: recipe.Recipe{BaseClass: "btn", Variants: table},
//		Selectors: recipe.Selectors{
//			recipe.Self: func(s string) string { return s + " svg" },
//		},
//		Base: &recipe.Style{Declarations: css.Declarations{
//			Properties: map[string]string{"pointer-events": "none"},
//		}},
//	}, sheet)
//
// All variant combinations are enumerated up front, nothing is resolved per
// rendered element.
package recipe
