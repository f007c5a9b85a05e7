// Package registry collects global style rules into a stylesheet.
package registry

import (
	"go.uber.org/zap"

	"gvs/css"
)

// Sheet is an append-only global style registry backed by a stylesheet.
// Every registration adds rules, nothing is ever deduplicated or merged.
// NOTE: not to be used concurrently.
type Sheet struct {
	log   *zap.Logger
	sheet css.Stylesheet
	count int
}

// New creates empty registry.
func New(log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sheet{log: log.Named("registry")}
}

// Register adds global style rule for selector. Nested at-rules are wrapped
// around the same selector.
func (s *Sheet) Register(selector string, decl css.Declarations) {
	s.count++
	s.sheet.AddRule(selector, decl)
	s.log.Debug("Registered global style",
		zap.String("selector", selector),
		zap.Int("properties", len(decl.Properties)),
		zap.Int("at-rules", len(decl.AtRules)))
}

// Len returns number of registrations made.
func (s *Sheet) Len() int {
	return s.count
}

// Stylesheet returns accumulated stylesheet.
func (s *Sheet) Stylesheet() *css.Stylesheet {
	return &s.sheet
}
