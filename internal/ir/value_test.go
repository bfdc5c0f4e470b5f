package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRValueSealed(t *testing.T) {
	var _ IRValue = IRNull{}
	var _ IRValue = IRString("test")
	var _ IRValue = IRInt(42)
	var _ IRValue = IRBool(true)
	var _ IRValue = IRArray{IRString("a"), IRInt(1)}
	var _ IRValue = IRObject{"key": IRString("value")}
	var _ IRValue = IRRecord{F("key", IRString("value"))}
}

func TestIRObjectSortedKeys(t *testing.T) {
	obj := IRObject{
		"zebra":  IRString("z"),
		"apple":  IRString("a"),
		"banana": IRString("b"),
	}

	assert.Equal(t, []string{"apple", "banana", "zebra"}, obj.SortedKeys())
}

func TestFromAny(t *testing.T) {
	got, err := FromAny(map[string]any{
		"title":    "Greeting",
		"subtitle": nil,
		"width":    30,
		"pad":      []any{1, 2, 1, 2},
		"big":      float64(40),
		"num":      json.Number("7"),
		"flag":     true,
	})
	require.NoError(t, err)

	want := IRObject{
		"title":    IRString("Greeting"),
		"subtitle": IRNull{},
		"width":    IRInt(30),
		"pad":      IRArray{IRInt(1), IRInt(2), IRInt(1), IRInt(2)},
		"big":      IRInt(40),
		"num":      IRInt(7),
		"flag":     IRBool(true),
	}
	assert.True(t, Equal(want, got))
}

func TestFromAnyRejectsFloats(t *testing.T) {
	_, err := FromAny(map[string]any{"ratio": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")

	_, err = FromAny(json.Number("1.5"))
	require.Error(t, err)
}

func TestFromAnyRejectsUnsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestToAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"a": "x",
		"b": int64(3),
		"c": []any{true, nil},
		"d": map[string]any{"e": "f"},
	}
	v, err := FromAny(in)
	require.NoError(t, err)
	assert.Equal(t, in, ToAny(v))
}

func TestDecode(t *testing.T) {
	v, err := Decode([]byte(`{"b": [1, null], "a": "x"}`))
	require.NoError(t, err)
	assert.True(t, Equal(IRObject{"a": IRString("x"), "b": IRArray{IRInt(1), IRNull{}}}, v))

	_, err = Decode([]byte(`{"a": 1.25}`))
	require.Error(t, err)
}

func TestEqualRecordOrder(t *testing.T) {
	a := IRRecord{F("x", IRInt(1)), F("y", IRInt(2))}
	b := IRRecord{F("y", IRInt(2)), F("x", IRInt(1))}
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, IRRecord{F("x", IRInt(1)), F("y", IRInt(2))}))

	v, ok := a.Get("y")
	require.True(t, ok)
	assert.Equal(t, IRInt(2), v)
}
