package ir

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRValueSealed(t *testing.T) {
	// Verify all types implement IRValue (compile-time check via assignment)
	var _ IRValue = IRNull{}
	var _ IRValue = IRString("test")
	var _ IRValue = IRInt(42)
	var _ IRValue = IRBool(true)
	var _ IRValue = IRTime(time.Unix(0, 0))
}

func TestFromAny(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want IRValue
	}{
		{"nil", nil, IRNull{}},
		{"string", "Standup", IRString("Standup")},
		{"bool", true, IRBool(true)},
		{"int", 10, IRInt(10)},
		{"int32", int32(-3), IRInt(-3)},
		{"uint16", uint16(7), IRInt(7)},
		{"integral float", float64(30), IRInt(30)},
		{"big int", big.NewInt(99), IRInt(99)},
		{"json number", json.Number("12"), IRInt(12)},
		{"time", ts, IRTime(ts)},
		{"already ir", IRString("x"), IRString("x")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromAny(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromAny_RejectsFloats(t *testing.T) {
	_, err := FromAny(1.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are not allowed")

	_, err = FromAny(json.Number("2.5"))
	require.Error(t, err)
}

func TestFromAny_FloatRange(t *testing.T) {
	_, err := FromAny(float64(1 << 63))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of int64 range")

	_, err = FromAny(float64(math.MaxInt64))
	require.Error(t, err)

	_, err = FromAny(-float64(1<<63) * 2)
	require.Error(t, err)

	got, err := FromAny(float64(math.MinInt64))
	require.NoError(t, err)
	assert.Equal(t, IRInt(math.MinInt64), got)

	got, err = FromAny(float64(1 << 62))
	require.NoError(t, err)
	assert.Equal(t, IRInt(1<<62), got)
}

func TestFromAny_RejectsUnsupported(t *testing.T) {
	_, err := FromAny([]string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported constant type")

	_, err = FromAny(uint64(1 << 63))
	require.Error(t, err)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(IRNull{}))
	assert.False(t, IsNull(IRString("")))
	assert.False(t, IsNull(IRInt(0)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "NULL", String(IRNull{}))
	assert.Equal(t, `"a b"`, String(IRString("a b")))
	assert.Equal(t, "-4", String(IRInt(-4)))
	assert.Equal(t, "false", String(IRBool(false)))
	assert.Equal(t, "2026-03-01T09:30:00Z", String(IRTime(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))))
}

func TestIRTimeMarshalJSON(t *testing.T) {
	data, err := json.Marshal(IRTime(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T09:30:00Z"`, string(data))

	data, err = json.Marshal(IRNull{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
