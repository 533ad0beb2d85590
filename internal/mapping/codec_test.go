package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calsearch/internal/ir"
)

func TestText_NormalizesToNFC(t *testing.T) {
	decomposed := ir.IRString("Cafe\u0301")

	v, err := Text.Encode(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", v)

	v, err = Text.Encode(ir.IRInt(42))
	require.NoError(t, err)
	assert.Equal(t, "42", v)
}

func TestBoolAsInt_NativeAndStringAgree(t *testing.T) {
	tests := []struct {
		in   ir.IRValue
		want int64
	}{
		{ir.IRBool(true), 1},
		{ir.IRString("true"), 1},
		{ir.IRString(" YES "), 1},
		{ir.IRInt(1), 1},
		{ir.IRBool(false), 0},
		{ir.IRString("false"), 0},
		{ir.IRString("0"), 0},
	}

	for _, tc := range tests {
		t.Run(ir.String(tc.in), func(t *testing.T) {
			v, err := BoolAsInt.Encode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}

	_, err := BoolAsInt.Encode(ir.IRString("maybe"))
	assert.Error(t, err)
	_, err = BoolAsInt.Encode(ir.IRInt(2))
	assert.Error(t, err)
}

func TestInteger_BooleanIntoIntegerColumn(t *testing.T) {
	v, err := Integer.Encode(ir.IRBool(true))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestEpochMillis_NativeAndStringAgree(t *testing.T) {
	ts := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	want := ts.UnixMilli()

	for _, in := range []ir.IRValue{
		ir.IRTime(ts),
		ir.IRString("2026-10-17T08:00:00Z"),
		ir.IRString("2026-10-17T10:00:00+02:00"),
		ir.IRString("20261017T080000Z"),
		ir.IRInt(want),
	} {
		v, err := EpochMillis.Encode(in)
		require.NoError(t, err, "input %s", ir.String(in))
		assert.Equal(t, want, v, "input %s", ir.String(in))
	}

	back, err := EpochMillis.Decode(want)
	require.NoError(t, err)
	assert.True(t, ts.Equal(back.(ir.IRTime).Time()))
}

func TestTimestamp_EncodesUTC(t *testing.T) {
	v, err := Timestamp.Encode(ir.IRString("2026-10-17"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), v)

	_, err = Timestamp.Encode(ir.IRString("next tuesday"))
	assert.Error(t, err)
}

func TestEnum_TokenStoredFormAndCase(t *testing.T) {
	codec := Enum("classification", map[string]any{
		"PUBLIC":       int64(1),
		"CONFIDENTIAL": int64(2),
		"PRIVATE":      int64(3),
	})

	for _, in := range []ir.IRValue{ir.IRString("PRIVATE"), ir.IRString("private"), ir.IRString("3"), ir.IRInt(3)} {
		v, err := codec.Encode(in)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	}

	_, err := codec.Encode(ir.IRString("SECRET"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown classification token "SECRET"`)

	_, err = codec.Encode(ir.IRInt(9))
	assert.Error(t, err)

	token, err := codec.Decode(int64(2))
	require.NoError(t, err)
	assert.Equal(t, ir.IRString("CONFIDENTIAL"), token)
}

func TestEnum_StringStoredForm(t *testing.T) {
	codec := Enum("status", map[string]any{
		"TENTATIVE": "T",
		"CONFIRMED": "C",
		"CANCELLED": "X",
	})

	v, err := codec.Encode(ir.IRString("Cancelled"))
	require.NoError(t, err)
	assert.Equal(t, "X", v)

	v, err = codec.Encode(ir.IRString("C"))
	require.NoError(t, err)
	assert.Equal(t, "C", v)

	token, err := codec.Decode([]byte("T"))
	require.NoError(t, err)
	assert.Equal(t, ir.IRString("TENTATIVE"), token)
}

func TestDefaultCodec(t *testing.T) {
	assert.Same(t, Text, DefaultCodec(TypeVarchar))
	assert.Same(t, Integer, DefaultCodec(TypeBigInt))
	assert.Same(t, Bool, DefaultCodec(TypeBoolean))
	assert.Same(t, Timestamp, DefaultCodec(TypeTimestamp))
}
