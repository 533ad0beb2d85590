package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

// IRValue is a sealed interface representing constrained value types.
// Only IRNull, IRString, IRInt, IRBool and IRTime implement this.
// NO IRFloat - floats are forbidden as search constants.
type IRValue interface {
	irValue() // Sealed - only these types implement it
}

// IRNull represents an SQL NULL constant.
// Using an explicit type ensures all IRValues satisfy the sealed interface.
type IRNull struct{}

func (IRNull) irValue() {}

// MarshalJSON implements json.Marshaler for IRNull.
func (IRNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value.
// Always int64, never float64.
type IRInt int64

func (IRInt) irValue() {}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRTime represents a point in time. Codecs decide whether the column
// stores it as epoch milliseconds or as a timestamp.
type IRTime time.Time

func (IRTime) irValue() {}

// Time returns the underlying time.Time.
func (t IRTime) Time() time.Time {
	return time.Time(t)
}

// MarshalJSON implements json.Marshaler for IRTime using RFC 3339.
func (t IRTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

// NewIRString creates an IRString value.
func NewIRString(s string) IRString {
	return IRString(s)
}

// NewIRInt creates an IRInt value.
func NewIRInt(n int64) IRInt {
	return IRInt(n)
}

// NewIRBool creates an IRBool value.
func NewIRBool(b bool) IRBool {
	return IRBool(b)
}

// NewIRTime creates an IRTime value.
func NewIRTime(t time.Time) IRTime {
	return IRTime(t)
}

// IsNull reports whether v is nil or IRNull.
func IsNull(v IRValue) bool {
	if v == nil {
		return true
	}
	_, ok := v.(IRNull)
	return ok
}

// FromAny converts a decoded Go value (from YAML, CUE, CEL or a caller) into
// an IRValue.
//
// Integral floats are accepted because several decoders produce float64 for
// every number; fractional floats are rejected.
func FromAny(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return IRNull{}, nil
	case IRValue:
		return val, nil
	case string:
		return IRString(val), nil
	case bool:
		return IRBool(val), nil
	case int:
		return IRInt(val), nil
	case int8:
		return IRInt(val), nil
	case int16:
		return IRInt(val), nil
	case int32:
		return IRInt(val), nil
	case int64:
		return IRInt(val), nil
	case uint:
		return uintToIR(uint64(val))
	case uint8:
		return IRInt(val), nil
	case uint16:
		return IRInt(val), nil
	case uint32:
		return IRInt(val), nil
	case uint64:
		return uintToIR(val)
	case float32:
		return floatToIR(float64(val))
	case float64:
		return floatToIR(val)
	case *big.Int:
		if val == nil || !val.IsInt64() {
			return nil, fmt.Errorf("integer out of int64 range: %v", val)
		}
		return IRInt(val.Int64()), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("floats are not allowed as constants: %s", val)
		}
		return IRInt(n), nil
	case time.Time:
		return IRTime(val), nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", v)
	}
}

func uintToIR(u uint64) (IRValue, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("integer out of int64 range: %d", u)
	}
	return IRInt(int64(u)), nil
}

func floatToIR(f float64) (IRValue, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("floats are not allowed as constants: %v", f)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("integer out of int64 range: %v", f)
	}
	return IRInt(int64(f)), nil
}

// String renders a value for diagnostics and CLI output.
func String(v IRValue) string {
	switch val := v.(type) {
	case nil, IRNull:
		return "NULL"
	case IRString:
		return strconv.Quote(string(val))
	case IRInt:
		return strconv.FormatInt(int64(val), 10)
	case IRBool:
		return strconv.FormatBool(bool(val))
	case IRTime:
		return time.Time(val).UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v)
	}
}
