package fitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "blank", input: "   ", want: nil},
		{name: "mixed case", input: "moog OEM", want: []string{"MOOG", "OEM"}},
		{name: "duplicate whitespace", input: "  moog \t\n  OEM  ", want: []string{"MOOG", "OEM"}},
		{name: "duplicates collapse", input: "moog MOOG Moog oem", want: []string{"MOOG", "OEM"}},
		{name: "angle bracket kept", input: "moog <DORMAN", want: []string{"MOOG", "<DORMAN"}},
		{name: "tag-like word kept", input: "<OEM> moog", want: []string{"<OEM>", "MOOG"}},
		{name: "no split inside a word", input: "brake<pad", want: []string{"BRAKE<PAD"}},
		{name: "entities kept literal", input: "A&amp;B A&B", want: []string{"A&AMP;B", "A&B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}
