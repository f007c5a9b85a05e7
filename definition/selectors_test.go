package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewSelectorFunc(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"self", "&", ".s_sm"},
		{"descendant", "& svg", ".s_sm svg"},
		{"sibling", "& + &", ".s_sm + .s_sm"},
		{"no placeholder", "svg", "svg"},
		{"template", "{{ .Selector }}:hover svg", ".s_sm:hover svg"},
		{"template with base", "{{ .Base }}{{ .Selector }} > path", ".btn.s_sm > path"},
		{"sprig", `{{ list .Selector "svg" | join " " }}`, ".s_sm svg"},
		{"trimmed template", "  {{ .Selector }}  ", ".s_sm"},
		{"trimmed plain", "\t& svg \n", ".s_sm svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := newSelectorFunc("&", tt.src, "btn", zaptest.NewLogger(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn(".s_sm"))
			// pure: same input, same output
			assert.Equal(t, fn(".s_sm"), fn(".s_sm"))
		})
	}
}

func TestNewSelectorFunc_Errors(t *testing.T) {
	for _, src := range []string{"{{ .Selector", "{{ .Nope }}", "{{ index .Selector 99 }}"} {
		_, err := newSelectorFunc("&", src, "btn", zaptest.NewLogger(t))
		assert.Error(t, err, src)
	}
}
