package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Tree {
	t.Helper()
	tr, err := ParseNewick(text)
	require.NoError(t, err)
	return tr
}

func TestMidpointReroot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		changed bool
	}{
		{
			name:    "moves root onto long branch",
			input:   "((A:1,B:1):1,C:4);",
			want:    "(C:3,(A:1,B:1):2);",
			changed: true,
		},
		{
			name:    "splits branch between subtrees",
			input:   "((A:1,B:1):1,C:1);",
			want:    "(C:1.5,(A:1,B:1):0.5);",
			changed: true,
		},
		{
			name:    "multifurcating root already at midpoint",
			input:   "(A:1,B:1,C:1);",
			want:    "(A:1,B:1,C:1);",
			changed: false,
		},
		{
			name:    "binary root already at midpoint",
			input:   "((A:1,B:1):2,C:3);",
			want:    "((A:1,B:1):2,C:3);",
			changed: false,
		},
		{
			name:    "single leaf",
			input:   "A;",
			want:    "A;",
			changed: false,
		},
		{
			name:    "no branch lengths",
			input:   "((A,B),C);",
			want:    "((A,B),C);",
			changed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := mustParse(t, tt.input)
			assert.Equal(t, tt.changed, tr.MidpointReroot())
			assert.Equal(t, tt.want, tr.String())
		})
	}
}

func TestMidpointRerootIsIdempotent(t *testing.T) {
	for _, input := range []string{
		"((A:1,B:1):1,C:4);",
		"((A:1,B:1):1,C:1);",
		"(((A:0.1,B:0.3):0.2,C:0.7):0.05,(D:0.4,E:0.2):0.6);",
	} {
		tr := mustParse(t, input)
		tr.MidpointReroot()
		once := tr.String()

		assert.False(t, tr.MidpointReroot(), input)
		assert.Equal(t, once, tr.String(), input)
	}
}

func TestMidpointRerootKeepsLeafSet(t *testing.T) {
	tr := mustParse(t, "(((A:0.1,B:0.3):0.2,C:0.7):0.05,(D:0.4,E:0.2):0.6);")
	before := tr.Leaves()

	require.True(t, tr.MidpointReroot())
	assert.ElementsMatch(t, before, tr.Leaves())
}
