package filter

import (
	"strings"

	"github.com/hupe1980/neodb/model"
)

// Matches checks if the approach satisfies this filter.
//
// NEO-level fields fail when the approach has no linked NEO. Booleans only
// support OpEqual.
func (f *Filter) Matches(ca *model.CloseApproach) bool {
	if f.Value.Kind == KindBool && f.Operator != OpEqual {
		return false
	}
	value, ok := fieldValue(f.Field, ca)
	if !ok {
		return false
	}

	switch f.Operator {
	case OpEqual:
		return compare(value, f.Value) == cmpEqual
	case OpGreaterEqual:
		c := compare(value, f.Value)
		return c == cmpEqual || c == cmpGreater
	case OpLessEqual:
		c := compare(value, f.Value)
		return c == cmpEqual || c == cmpLess
	default:
		return false
	}
}

// Matches checks if the approach satisfies all filters in the set.
// A nil or empty set matches everything.
func (fs *Set) Matches(ca *model.CloseApproach) bool {
	if fs == nil {
		return true
	}
	for i := range fs.Filters {
		if !fs.Filters[i].Matches(ca) {
			return false
		}
	}
	return true
}

// Len returns the number of filters in the set.
func (fs *Set) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.Filters)
}

// NeedsNEO reports whether any filter reads the linked NEO.
func (fs *Set) NeedsNEO() bool {
	if fs == nil {
		return false
	}
	for _, f := range fs.Filters {
		if f.Field.NEOLevel() {
			return true
		}
	}
	return false
}

// Hazardous returns the value required by the first hazardous equality
// filter. ok is false when the set does not constrain the flag.
func (fs *Set) Hazardous() (value bool, ok bool) {
	if fs == nil {
		return false, false
	}
	for _, f := range fs.Filters {
		if f.Field == FieldHazardous && f.Operator == OpEqual && f.Value.Kind == KindBool {
			return f.Value.B, true
		}
	}
	return false, false
}

func (fs *Set) String() string {
	if fs.Len() == 0 {
		return "<all>"
	}
	parts := make([]string, len(fs.Filters))
	for i, f := range fs.Filters {
		parts[i] = f.String()
	}
	return strings.Join(parts, " AND ")
}

func fieldValue(field Field, ca *model.CloseApproach) (Value, bool) {
	switch field {
	case FieldDate:
		return DateValue(DateOf(ca.Time)), true
	case FieldDistance:
		return FloatValue(ca.Distance), true
	case FieldVelocity:
		return FloatValue(ca.Velocity), true
	}

	neo, err := ca.LinkedNEO()
	if err != nil {
		return Value{}, false
	}

	switch field {
	case FieldDiameter:
		return FloatValue(neo.Diameter), true
	case FieldHazardous:
		return BoolValue(neo.Hazardous), true
	default:
		return Value{}, false
	}
}

type ordering int8

const (
	cmpIncomparable ordering = iota
	cmpLess
	cmpEqual
	cmpGreater
)

// compare orders a against b. Values of different kinds, NaN floats and
// unequal booleans are incomparable.
func compare(a, b Value) ordering {
	if a.Kind != b.Kind {
		return cmpIncomparable
	}

	switch a.Kind {
	case KindFloat:
		switch {
		case a.F64 < b.F64:
			return cmpLess
		case a.F64 > b.F64:
			return cmpGreater
		case a.F64 == b.F64:
			return cmpEqual
		default:
			return cmpIncomparable // NaN
		}
	case KindBool:
		if a.B == b.B {
			return cmpEqual
		}
		return cmpIncomparable
	case KindDate:
		switch a.D.Compare(b.D) {
		case -1:
			return cmpLess
		case 1:
			return cmpGreater
		default:
			return cmpEqual
		}
	default:
		return cmpIncomparable
	}
}
