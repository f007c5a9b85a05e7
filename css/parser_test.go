package css_test

import (
	"testing"

	"go.uber.org/zap"

	"gvs/css"
)

func TestParser_ClassSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.btn { pointer-events: none; }`))

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Selector != ".btn" {
		t.Errorf("expected selector '.btn', got '%s'", rules[0].Selector)
	}
	val, ok := rules[0].GetProperty("pointer-events")
	if !ok {
		t.Fatal("expected pointer-events property")
	}
	if val != "none" {
		t.Errorf("expected 'none', got '%s'", val)
	}
}

func TestParser_DescendantSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.s_sm.c_primary   svg { width: 16px; }`))

	rules := sheet.RulesBySelector(".s_sm.c_primary svg")
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d (%v)", len(rules), sheet.Rules())
	}
	if v, _ := rules[0].GetProperty("width"); v != "16px" {
		t.Errorf("expected width 16px, got '%s'", v)
	}
}

func TestParser_GroupedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`h2, h3, h4 { font-size: 120%; }`))

	rules := sheet.Rules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	for i, want := range []string{"h2", "h3", "h4"} {
		if rules[i].Selector != want {
			t.Errorf("rule %d: expected selector '%s', got '%s'", i, want, rules[i].Selector)
		}
		if v, _ := rules[i].GetProperty("font-size"); v != "120%" {
			t.Errorf("rule %d: expected font-size 120%%, got '%s'", i, v)
		}
	}
}

func TestParser_MultiTokenValue(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.btn:hover svg { transform: scale(1.1); border: 1px solid red; }`))

	rules := sheet.RulesBySelector(".btn:hover svg")
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if v, _ := rules[0].GetProperty("transform"); v != "scale(1.1)" {
		t.Errorf("expected transform 'scale(1.1)', got '%s'", v)
	}
	if v, _ := rules[0].GetProperty("border"); v != "1px solid red" {
		t.Errorf("expected border '1px solid red', got '%s'", v)
	}
}

func TestParser_MediaBlock(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`
.a { color: red; }

@media (min-width: 768px) {
  .a svg { width: 20px; }
}
`)
	sheet := p.Parse(input, "test")

	if len(sheet.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(sheet.Items))
	}
	blocks := sheet.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Name != "@media" {
		t.Errorf("expected @media block, got '%s'", b.Name)
	}
	if b.Query != "(min-width: 768px)" {
		t.Errorf("unexpected query '%s'", b.Query)
	}
	if len(b.Items) != 1 || b.Items[0].Rule == nil {
		t.Fatalf("expected single nested rule, got %+v", b.Items)
	}
	if b.Items[0].Rule.Selector != ".a svg" {
		t.Errorf("unexpected nested selector '%s'", b.Items[0].Rule.Selector)
	}
}

func TestParser_UnsupportedAtRule(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`@font-face { font-family: "X"; src: url(x.woff); }
.a { color: red; }`)
	sheet := p.Parse(input)

	if len(sheet.Rules()) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules()))
	}
	if len(sheet.Warnings) == 0 {
		t.Error("expected warning for @font-face")
	}
}

func TestParser_ParseDeclarations(t *testing.T) {
	p := css.NewParser(nil)

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "single",
			input: "width: 16px",
			want:  map[string]string{"width": "16px"},
		},
		{
			name:  "multiple with trailing semicolon",
			input: "width: 16px; color: red;",
			want:  map[string]string{"width": "16px", "color": "red"},
		},
		{
			name:  "function value",
			input: "transform: scale(1.1)",
			want:  map[string]string{"transform": "scale(1.1)"},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseDeclarations(tt.input)
			if err != nil {
				t.Fatalf("ParseDeclarations() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseDeclarations() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("property %s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestParser_RoundTrip(t *testing.T) {
	var sheet css.Stylesheet
	sheet.AddRule(".btn svg", css.Declarations{Properties: map[string]string{"pointer-events": "none"}})
	sheet.AddRule(".s_sm svg", css.Declarations{
		Properties: map[string]string{"width": "16px"},
		AtRules: []css.AtRule{{
			Name:  "@media",
			Query: "(min-width: 768px)",
			Block: css.Declarations{Properties: map[string]string{"width": "20px"}},
		}},
	})

	parsed := css.NewParser(zap.NewNop()).Parse([]byte(sheet.String()))

	if len(parsed.Rules()) != 2 {
		t.Fatalf("expected 2 rules after round trip, got %d", len(parsed.Rules()))
	}
	if len(parsed.Blocks()) != 1 {
		t.Fatalf("expected 1 block after round trip, got %d", len(parsed.Blocks()))
	}
	if parsed.String() != sheet.String() {
		t.Errorf("round trip changed stylesheet:\n%s\nvs\n%s", parsed.String(), sheet.String())
	}
}
