package filter

import (
	"fmt"
	"strconv"
)

// Field identifies the record field a Filter reads.
type Field uint8

const (
	// FieldDate is the calendar date of the approach time.
	FieldDate Field = iota
	// FieldDistance is the nominal approach distance in au.
	FieldDistance
	// FieldVelocity is the relative approach velocity in km/s.
	FieldVelocity
	// FieldDiameter is the diameter of the linked NEO in km.
	FieldDiameter
	// FieldHazardous is the hazardous flag of the linked NEO.
	FieldHazardous
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldDate:
		return "date"
	case FieldDistance:
		return "distance"
	case FieldVelocity:
		return "velocity"
	case FieldDiameter:
		return "diameter"
	case FieldHazardous:
		return "hazardous"
	default:
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
}

// NEOLevel reports whether the field is read from the linked NEO.
func (f Field) NEOLevel() bool {
	return f == FieldDiameter || f == FieldHazardous
}

// Operator is a comparison operator.
type Operator uint8

const (
	// OpEqual matches when the field equals the value.
	OpEqual Operator = iota
	// OpGreaterEqual matches when the field is >= the value.
	OpGreaterEqual
	// OpLessEqual matches when the field is <= the value.
	OpLessEqual
)

// String returns the operator symbol.
func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "=="
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	default:
		return "?"
	}
}

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindFloat represents a float value.
	KindFloat
	// KindBool represents a boolean value.
	KindBool
	// KindDate represents a calendar date.
	KindDate
)

// Value is a small typed value compared by filters.
type Value struct {
	Kind Kind
	F64  float64
	B    bool
	D    Date
}

// FloatValue creates a float Value.
func FloatValue(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// BoolValue creates a bool Value.
func BoolValue(v bool) Value { return Value{Kind: KindBool, B: v} }

// DateValue creates a date Value.
func DateValue(v Date) Value { return Value{Kind: KindDate, D: v} }

func (v Value) String() string {
	switch v.Kind {
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindDate:
		return v.D.String()
	default:
		return "invalid"
	}
}

// Filter is a single field comparison.
type Filter struct {
	Field    Field
	Operator Operator
	Value    Value
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s %s", f.Field, f.Operator, f.Value)
}

// Set is a collection of filters combined by logical AND.
type Set struct {
	Filters []Filter
}

// Eq creates an equality filter.
func Eq(field Field, v Value) Filter {
	return Filter{Field: field, Operator: OpEqual, Value: v}
}

// Gte creates a greater-or-equal filter.
func Gte(field Field, v Value) Filter {
	return Filter{Field: field, Operator: OpGreaterEqual, Value: v}
}

// Lte creates a less-or-equal filter.
func Lte(field Field, v Value) Filter {
	return Filter{Field: field, Operator: OpLessEqual, Value: v}
}

// And combines filters into a Set.
func And(filters ...Filter) *Set {
	return &Set{Filters: filters}
}

// Ptr returns a pointer to v. It is a helper for populating Criteria.
func Ptr[T any](v T) *T {
	return &v
}
