package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldKind identifies which variant a FieldValue holds.
type FieldKind int

const (
	// KindAbsent marks a field that was not present in the input.
	KindAbsent FieldKind = iota
	// KindNull marks an explicit JSON null.
	KindNull
	KindString
	KindNumber
	KindBool
	// KindUnsupported marks arrays and objects, which no field accepts.
	KindUnsupported
)

func (k FieldKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unsupported"
	}
}

// FieldValue is a tagged union over the scalar shapes a survey field may take.
// The zero value is an absent field.
type FieldValue struct {
	kind FieldKind
	str  string
	num  float64
	b    bool
	raw  string
}

// StringValue returns a string variant.
func StringValue(s string) FieldValue {
	return FieldValue{kind: KindString, str: s}
}

// NumberValue returns a numeric variant.
func NumberValue(f float64) FieldValue {
	return FieldValue{kind: KindNumber, num: f}
}

// BoolValue returns a boolean variant.
func BoolValue(b bool) FieldValue {
	return FieldValue{kind: KindBool, b: b}
}

// NullValue returns an explicit null.
func NullValue() FieldValue {
	return FieldValue{kind: KindNull}
}

// Kind reports the variant held.
func (v FieldValue) Kind() FieldKind { return v.kind }

// IsAbsent reports whether the field was missing from the input.
func (v FieldValue) IsAbsent() bool { return v.kind == KindAbsent }

// Str returns the string payload and whether the value is a string.
func (v FieldValue) Str() (string, bool) { return v.str, v.kind == KindString }

// Number returns the numeric payload and whether the value is a number.
func (v FieldValue) Number() (float64, bool) { return v.num, v.kind == KindNumber }

// Bool returns the boolean payload and whether the value is a bool.
func (v FieldValue) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String renders the value for error messages.
func (v FieldValue) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.raw
	}
}

// UnmarshalJSON decodes a single JSON value into the matching variant.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = FieldValue{}
		return nil
	}

	switch data[0] {
	case 'n':
		*v = NullValue()
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decode bool: %w", err)
		}
		*v = BoolValue(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string: %w", err)
		}
		*v = StringValue(s)
	case '[', '{':
		*v = FieldValue{kind: KindUnsupported, raw: string(data)}
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("decode number %s: %w", data, err)
		}
		*v = NumberValue(f)
	}
	return nil
}

// MarshalJSON encodes the held variant. Absent and null both encode as null.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindUnsupported:
		return []byte(v.raw), nil
	default:
		return []byte("null"), nil
	}
}
