package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/mapping"
)

// Enum codecs of the calendar schema.
var (
	// ClassificationCodec stores the three-way classification as a small integer.
	ClassificationCodec = mapping.Enum("classification", map[string]any{
		"PUBLIC":       int64(1),
		"CONFIDENTIAL": int64(2),
		"PRIVATE":      int64(3),
	})

	TransparencyCodec = mapping.Enum("transparency", map[string]any{
		"OPAQUE":      "O",
		"TRANSPARENT": "T",
	})

	EventStatusCodec = mapping.Enum("status", map[string]any{
		"TENTATIVE": "T",
		"CONFIRMED": "C",
		"CANCELLED": "X",
	})

	PartStatCodec = mapping.Enum("partstat", map[string]any{
		"NEEDS-ACTION": "NEEDS-ACTION",
		"ACCEPTED":     "ACCEPTED",
		"DECLINED":     "DECLINED",
		"TENTATIVE":    "TENTATIVE",
		"DELEGATED":    "DELEGATED",
	})

	CUTypeCodec = mapping.Enum("cutype", map[string]any{
		"INDIVIDUAL": int64(1),
		"GROUP":      int64(2),
		"RESOURCE":   int64(3),
		"ROOM":       int64(4),
		"UNKNOWN":    int64(5),
	})

	RoleCodec = mapping.Enum("role", map[string]any{
		"CHAIR":           "CHAIR",
		"REQ-PARTICIPANT": "REQ-PARTICIPANT",
		"OPT-PARTICIPANT": "OPT-PARTICIPANT",
		"NON-PARTICIPANT": "NON-PARTICIPANT",
	})

	AlarmActionCodec = mapping.Enum("alarm_action", map[string]any{
		"AUDIO":   "AUDIO",
		"DISPLAY": "DISPLAY",
		"EMAIL":   "EMAIL",
	})
)

// UIDCodec canonicalizes UUID-shaped UIDs (lower case, hyphenated) and
// passes every other UID through NFC-normalized.
var UIDCodec = &mapping.Codec{
	Name: "uid",
	Encode: func(v ir.IRValue) (any, error) {
		s, ok := v.(ir.IRString)
		if !ok {
			return nil, fmt.Errorf("uid must be a string, got %T", v)
		}
		raw := strings.TrimSpace(string(s))
		if id, err := uuid.Parse(raw); err == nil {
			return id.String(), nil
		}
		return norm.NFC.String(raw), nil
	},
	Decode: mapping.Text.Decode,
}

const resourcePrefix = "urn:calsearch:ctx:"

// ResourceURI formats the resource identifier of an internal calendar user.
func ResourceURI(contextID, userID int64) string {
	return fmt.Sprintf("%s%d:user:%d", resourcePrefix, contextID, userID)
}

// ParseResourceURI extracts context and user id from a resource identifier.
func ParseResourceURI(uri string) (contextID, userID int64, ok bool) {
	rest, found := strings.CutPrefix(uri, resourcePrefix)
	if !found {
		return 0, 0, false
	}
	ctxPart, userPart, found := strings.Cut(rest, ":user:")
	if !found {
		return 0, 0, false
	}
	c, err := strconv.ParseInt(ctxPart, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	u, err := strconv.ParseInt(userPart, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return c, u, true
}

// NewCalendarUserCodec builds the codec for columns that store a calendar
// user as a composite resource identifier. Numeric user ids (native or as
// strings) are formatted with the given context; identifiers of another
// context are rejected; any other string (mailto:, external URIs) passes
// through NFC-normalized.
func NewCalendarUserCodec(contextID int64) *mapping.Codec {
	encode := func(v ir.IRValue) (any, error) {
		switch val := v.(type) {
		case ir.IRInt:
			if val <= 0 {
				return nil, fmt.Errorf("calendar user id must be positive, got %d", int64(val))
			}
			return ResourceURI(contextID, int64(val)), nil
		case ir.IRString:
			s := strings.TrimSpace(string(val))
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				if n <= 0 {
					return nil, fmt.Errorf("calendar user id must be positive, got %d", n)
				}
				return ResourceURI(contextID, n), nil
			}
			if c, _, ok := ParseResourceURI(s); ok && c != contextID {
				return nil, fmt.Errorf("resource identifier %q belongs to context %d, not %d", s, c, contextID)
			}
			return norm.NFC.String(s), nil
		default:
			return nil, fmt.Errorf("unsupported calendar user value %T", v)
		}
	}

	decode := func(stored any) (ir.IRValue, error) {
		value, err := mapping.Text.Decode(stored)
		if err != nil {
			return nil, err
		}
		if _, user, ok := ParseResourceURI(string(value.(ir.IRString))); ok {
			return ir.IRInt(user), nil
		}
		return value, nil
	}

	return &mapping.Codec{Name: "calendar_user", Encode: encode, Decode: decode}
}
