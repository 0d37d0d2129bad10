package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalStrings(t *testing.T) {
	data, err := marshalStrings([]string{"A", "<&>"})
	require.NoError(t, err)
	assert.Equal(t, `["A","<&>"]`, data)

	data, err = marshalStrings(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, data)
}

func TestUnmarshalStrings(t *testing.T) {
	values, err := unmarshalStrings(`["A","G"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "G"}, values)

	values, err = unmarshalStrings(`[]`)
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = unmarshalStrings(`{`)
	assert.Error(t, err)
}
