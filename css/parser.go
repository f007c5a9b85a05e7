package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets and declaration lists. Property values are
// never interpreted, only collected as written.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	sheet.Items = p.parseItems(parser, sheet, false)
	return sheet
}

// parseItems collects rules and conditional blocks until the end of input or,
// when nested is set, until the end of enclosing at-rule block.
func (p *Parser) parseItems(parser *css.Parser, sheet *Stylesheet, nested bool) []StylesheetItem {
	items := make([]StylesheetItem, 0)
	// selectors of a grouped selector list preceding the ruleset
	var pending []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return items

		case css.EndAtRuleGrammar:
			if nested {
				return items
			}

		case css.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			if !IsConditional(name) {
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+name)
				p.log.Debug("Skipping @-rule", zap.String("rule", name))
				p.skipAtRuleBlock(parser)
				continue
			}
			query := joinTokens(parser.Values())
			block := &Block{Name: name, Query: query}
			block.Items = p.parseItems(parser, sheet, true)
			p.log.Debug("Parsed @-rule block", zap.String("rule", name), zap.String("query", query), zap.Int("items", len(block.Items)))
			items = append(items, StylesheetItem{Block: block})

		case css.AtRuleGrammar:
			// at-rules without block (@import, @charset, @layer list) carry no rules
			name := strings.ToLower(string(data))
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+name)
			p.log.Debug("Skipping @-rule", zap.String("rule", name))

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			if gt == css.QualifiedRuleGrammar {
				// selector list continues, declarations follow later
				pending = selectors
				continue
			}
			props := p.parseDeclarations(parser)
			for _, sel := range selectors {
				rule := &Rule{Selector: sel, Properties: maps.Clone(props)}
				items = append(items, StylesheetItem{Rule: rule})
			}

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			sheet.Warnings = append(sheet.Warnings, "declaration outside of rule: "+string(data))
			p.log.Debug("Skipping declaration outside of rule", zap.String("property", string(data)))
		}
	}
}

// ParseDeclarations parses inline declaration list text (e.g.
// "width: 16px; color: red") into property map.
func (p *Parser) ParseDeclarations(text string) (map[string]string, error) {
	parser := css.NewParser(parse.NewInput(strings.NewReader(text)), true)
	props := make(map[string]string)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("unable to parse declarations %q: %w", text, err)
			}
			return props, nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := string(data)
			value := joinTokens(parser.Values())
			if value == "" {
				p.log.Debug("Skipping empty declaration", zap.String("property", name))
				continue
			}
			props[name] = value

		default:
			return nil, fmt.Errorf("unexpected content in declarations %q: %s", text, gt)
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]string {
	props := make(map[string]string)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if value := joinTokens(parser.Values()); value != "" {
				props[string(data)] = value
			}
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// joinTokens rebuilds raw text from tokens collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
