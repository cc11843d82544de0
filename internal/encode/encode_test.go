package encode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/tabular-go/internal/encode"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	obj := new(encode.Object).
		Field("zebra", 1).
		Field("apple", "two").
		Field("mango", true)

	out, err := obj.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":"two","mango":true}`, string(out))
}

func TestObjectEmpty(t *testing.T) {
	out, err := new(encode.Object).Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
	assert.Equal(t, 0, new(encode.Object).Len())
}

func TestObjectFieldRaw(t *testing.T) {
	out, err := new(encode.Object).FieldRaw("inner", []byte(`{"$eq":"US"}`)).Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"inner":{"$eq":"US"}}`, string(out))
}

func TestMarshalSortsMapKeys(t *testing.T) {
	// User-supplied maps must serialize deterministically.
	out, err := encode.Marshal(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(out))
}

func TestObjectReusableAcrossCalls(t *testing.T) {
	obj := new(encode.Object).Field("k", "v")
	first, err := obj.Bytes()
	require.NoError(t, err)
	second, err := obj.Bytes()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
