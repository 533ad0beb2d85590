package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/calsearch/internal/ir"
)

// EncodeFunc converts a logical value into its stored form.
type EncodeFunc func(ir.IRValue) (any, error)

// DecodeFunc converts a stored value back into its logical form.
type DecodeFunc func(any) (ir.IRValue, error)

// Codec is a pair of pure conversion functions for one stored representation.
//
// Encode must produce the same stored value whether the logical value
// arrives in its native type or as its string serialization.
// Encode is never called with IRNull; Mapping.Encode handles NULL.
type Codec struct {
	Name   string
	Encode EncodeFunc
	Decode DecodeFunc
}

// Generic codecs shared by every registry.
var (
	Text        = &Codec{Name: "text", Encode: encodeText, Decode: decodeText}
	Integer     = &Codec{Name: "integer", Encode: encodeInteger, Decode: decodeInteger}
	BoolAsInt   = &Codec{Name: "bool_as_int", Encode: encodeBoolAsInt, Decode: decodeBoolAsInt}
	Bool        = &Codec{Name: "bool", Encode: encodeBool, Decode: decodeBool}
	EpochMillis = &Codec{Name: "epoch_millis", Encode: encodeEpochMillis, Decode: decodeEpochMillis}
	Timestamp   = &Codec{Name: "timestamp", Encode: encodeTimestamp, Decode: decodeTimestamp}
)

// DefaultCodec returns the codec used for a column type when a descriptor
// does not name one.
func DefaultCodec(t SQLType) *Codec {
	switch {
	case t.IsText():
		return Text
	case t == TypeBoolean:
		return Bool
	case t == TypeTimestamp:
		return Timestamp
	default:
		return Integer
	}
}

func encodeText(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRString:
		return norm.NFC.String(string(val)), nil
	case ir.IRInt:
		return strconv.FormatInt(int64(val), 10), nil
	case ir.IRBool:
		return strconv.FormatBool(bool(val)), nil
	case ir.IRTime:
		return val.Time().UTC().Format(time.RFC3339), nil
	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

func decodeText(stored any) (ir.IRValue, error) {
	switch s := stored.(type) {
	case string:
		return ir.IRString(s), nil
	case []byte:
		return ir.IRString(string(s)), nil
	default:
		return nil, fmt.Errorf("expected text, got %T", stored)
	}
}

func encodeInteger(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRInt:
		return int64(val), nil
	case ir.IRBool:
		return boolToInt(bool(val)), nil
	case ir.IRString:
		n, err := strconv.ParseInt(strings.TrimSpace(string(val)), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", string(val))
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

func decodeInteger(stored any) (ir.IRValue, error) {
	n, err := storedInt(stored)
	if err != nil {
		return nil, err
	}
	return ir.IRInt(n), nil
}

func encodeBoolAsInt(v ir.IRValue) (any, error) {
	b, err := parseBool(v)
	if err != nil {
		return nil, err
	}
	return boolToInt(b), nil
}

func decodeBoolAsInt(stored any) (ir.IRValue, error) {
	n, err := storedInt(stored)
	if err != nil {
		return nil, err
	}
	return ir.IRBool(n != 0), nil
}

func encodeBool(v ir.IRValue) (any, error) {
	return parseBool(v)
}

func decodeBool(stored any) (ir.IRValue, error) {
	switch b := stored.(type) {
	case bool:
		return ir.IRBool(b), nil
	default:
		return decodeBoolAsInt(stored)
	}
}

func encodeEpochMillis(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRInt:
		return int64(val), nil
	case ir.IRTime:
		return val.Time().UnixMilli(), nil
	case ir.IRString:
		s := strings.TrimSpace(string(val))
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		t, err := ParseTime(s)
		if err != nil {
			return nil, err
		}
		return t.UnixMilli(), nil
	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

func decodeEpochMillis(stored any) (ir.IRValue, error) {
	n, err := storedInt(stored)
	if err != nil {
		return nil, err
	}
	return ir.IRTime(time.UnixMilli(n).UTC()), nil
}

func encodeTimestamp(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRTime:
		return val.Time().UTC(), nil
	case ir.IRInt:
		return time.UnixMilli(int64(val)).UTC(), nil
	case ir.IRString:
		t, err := ParseTime(strings.TrimSpace(string(val)))
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

func decodeTimestamp(stored any) (ir.IRValue, error) {
	switch t := stored.(type) {
	case time.Time:
		return ir.IRTime(t.UTC()), nil
	case string:
		parsed, err := ParseTime(t)
		if err != nil {
			return nil, err
		}
		return ir.IRTime(parsed.UTC()), nil
	default:
		return nil, fmt.Errorf("expected timestamp, got %T", stored)
	}
}

// timeLayouts are tried in order by ParseTime.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"20060102T150405Z",
	"2006-01-02",
	"20060102",
}

// ParseTime parses the date/time serializations accepted by the time codecs.
// Values without a zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a date/time: %q", s)
}

func parseBool(v ir.IRValue) (bool, error) {
	switch val := v.(type) {
	case ir.IRBool:
		return bool(val), nil
	case ir.IRInt:
		switch val {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, fmt.Errorf("not a boolean: %d", int64(val))
	case ir.IRString:
		switch strings.ToLower(strings.TrimSpace(string(val))) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off":
			return false, nil
		}
		return false, fmt.Errorf("not a boolean: %q", string(val))
	default:
		return false, fmt.Errorf("unsupported value %T", v)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func storedInt(stored any) (int64, error) {
	switch n := stored.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case bool:
		return boolToInt(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("expected integer, got %T", stored)
	}
}

// Enum builds a codec for a free-text enum token stored in a short form.
//
// tokens maps canonical token names to their stored form (int64 or string).
// Encoding accepts the token in any case (Unicode case folding), or the
// stored form itself; decoding maps a stored form back to its token.
func Enum(name string, tokens map[string]any) *Codec {
	folded := make(map[string]any, len(tokens))
	reverse := make(map[string]string, len(tokens))
	for token, stored := range tokens {
		folded[fold(token)] = stored
		reverse[storedKey(stored)] = token
	}

	encode := func(v ir.IRValue) (any, error) {
		switch val := v.(type) {
		case ir.IRString:
			s := strings.TrimSpace(string(val))
			if stored, ok := folded[fold(s)]; ok {
				return stored, nil
			}
			if _, ok := reverse["s:"+s]; ok {
				return s, nil
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				if _, ok := reverse[storedKey(n)]; ok {
					return n, nil
				}
			}
			return nil, fmt.Errorf("unknown %s token %q", name, s)
		case ir.IRInt:
			if _, ok := reverse[storedKey(int64(val))]; ok {
				return int64(val), nil
			}
			return nil, fmt.Errorf("unknown %s value %d", name, int64(val))
		default:
			return nil, fmt.Errorf("unsupported %s value %T", name, v)
		}
	}

	decode := func(stored any) (ir.IRValue, error) {
		key := storedKey(stored)
		if b, ok := stored.([]byte); ok {
			key = storedKey(string(b))
		}
		if n, err := storedInt(stored); err == nil {
			if token, ok := reverse[storedKey(n)]; ok {
				return ir.IRString(token), nil
			}
		}
		if token, ok := reverse[key]; ok {
			return ir.IRString(token), nil
		}
		return nil, fmt.Errorf("unknown stored %s value %v", name, stored)
	}

	return &Codec{Name: name, Encode: encode, Decode: decode}
}

// fold case-folds a token. Casers are stateful, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func storedKey(stored any) string {
	switch s := stored.(type) {
	case string:
		return "s:" + s
	case int64:
		return "i:" + strconv.FormatInt(s, 10)
	case int:
		return "i:" + strconv.Itoa(s)
	default:
		return fmt.Sprintf("%T:%v", stored, stored)
	}
}
