package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Bio Optional[string]  `json:"bio"`
	Lat Optional[float64] `json:"lat"`
}

func TestOptional_DistinguishesAbsentFromNull(t *testing.T) {
	var in patchBody
	require.NoError(t, json.Unmarshal([]byte(`{"bio":null}`), &in))

	assert.True(t, in.Bio.Set)
	assert.Nil(t, in.Bio.Value)
	assert.False(t, in.Lat.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"lat":39.5}`), &in))
	assert.True(t, in.Lat.Set)
	require.NotNil(t, in.Lat.Value)
	assert.Equal(t, 39.5, *in.Lat.Value)
}

func TestOptional_Apply(t *testing.T) {
	old := "kept"
	dst := &old

	Optional[string]{}.Apply(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "kept", *dst)

	Null[string]().Apply(&dst)
	assert.Nil(t, dst)

	Some("new").Apply(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "new", *dst)
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var in patchBody
	assert.Error(t, json.Unmarshal([]byte(`{"lat":"north"}`), &in))
}
