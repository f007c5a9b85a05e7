package recipe

import "gvs/css"

// Self is the state tag of the element itself. Every Selectors set must
// have a generator for it.
const Self = "&"

// SelectorFunc turns compound class selector into a complete selector for a
// single state, e.g. func(s string) string { return s + ":hover svg" }.
// It must be pure: it may be called many times with the same input.
type SelectorFunc func(compound string) string

// Selectors maps state tag to selector generator.
type Selectors map[string]SelectorFunc

// StateStyle is a style applied to a single non-self state.
type StateStyle struct {
	State string
	Style css.Declarations
}

// Style is a block of declarations for the self state plus declarations for
// additional states. States are not nested further.
type Style struct {
	css.Declarations
	States []StateStyle
}

// Compound is a style applied when all chosen variants are active at once.
type Compound struct {
	Variants Choices
	Style    Style
}

// Recipe is the output of style compilation: the base class of a
// component and its variant class table.
type Recipe struct {
	BaseClass string
	Variants  Table
}
