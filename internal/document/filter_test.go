package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterSpec(t *testing.T) {
	tests := []struct {
		arg  string
		want FilterSpec
	}{
		{`regions.bed,coreA,"core genome A"`, FilterSpec{File: "regions.bed", Name: "coreA", Description: "core genome A"}},
		{`regions.bed,coreA,core genome A`, FilterSpec{File: "regions.bed", Name: "coreA", Description: "core genome A"}},
		{`regions.bed,'coreA','a, b, c'`, FilterSpec{File: "regions.bed", Name: "coreA", Description: "a, b, c"}},
		{`regions.bed,coreA,"x",y`, FilterSpec{File: "regions.bed", Name: "coreA", Description: `"x",y`}},
		{"regions.bed,cafe\u0301,d", FilterSpec{File: "regions.bed", Name: "caf\u00e9", Description: "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseFilterSpec(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilterSpecErrors(t *testing.T) {
	tests := []struct {
		arg     string
		file    string
		missing string
	}{
		{"regions.bed,coreA", "regions.bed", "description"},
		{"regions.bed,coreA,", "regions.bed", "description"},
		{`regions.bed,coreA,""`, "regions.bed", "description"},
		{"regions.bed", "regions.bed", "name"},
		{"regions.bed,,desc", "regions.bed", "name"},
		{`regions.bed,"",desc`, "regions.bed", "name"},
		{",coreA,desc", "", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			_, err := ParseFilterSpec(tt.arg)
			require.Error(t, err)
			assert.True(t, IsFilterSpecError(err))

			var fe *FilterSpecError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.file, fe.File)
			assert.Equal(t, tt.missing, fe.Missing)
			if tt.file != "" {
				assert.Contains(t, err.Error(), tt.file)
			}
		})
	}
}
