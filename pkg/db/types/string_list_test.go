package dbtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"Washing", "Ironing"}

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Washing","Ironing"]`, value)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListScanHandlesNilAndBytes(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)

	require.NoError(t, list.Scan([]byte(`["Dry Cleaning"]`)))
	assert.Equal(t, StringList{"Dry Cleaning"}, list)

	require.Error(t, list.Scan(42))
}

func TestStringListEmptyValue(t *testing.T) {
	value, err := StringList{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestStringListContains(t *testing.T) {
	list := StringList{"Washing"}
	assert.True(t, list.Contains("Washing"))
	assert.False(t, list.Contains("Ironing"))
}
