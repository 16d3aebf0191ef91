package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Criteria holds the optional criteria of a query. A nil field is not
// applied. Hazardous distinguishes "not specified" (nil) from "require not
// hazardous" (pointer to false).
type Criteria struct {
	Date      *Date
	StartDate *Date
	EndDate   *Date

	DistanceMin *float64
	DistanceMax *float64
	VelocityMin *float64
	VelocityMax *float64
	DiameterMin *float64
	DiameterMax *float64

	Hazardous *bool
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Compile converts the criteria into a filter set. Approach-level filters
// come first so that cheap comparisons short-circuit the AND.
func (c Criteria) Compile() *Set {
	fs := &Set{}

	addDate := func(op Operator, d *Date) {
		if d != nil {
			fs.Filters = append(fs.Filters, Filter{Field: FieldDate, Operator: op, Value: DateValue(*d)})
		}
	}
	addFloat := func(field Field, op Operator, v *float64) {
		if v != nil {
			fs.Filters = append(fs.Filters, Filter{Field: field, Operator: op, Value: FloatValue(*v)})
		}
	}

	addDate(OpEqual, c.Date)
	addDate(OpGreaterEqual, c.StartDate)
	addDate(OpLessEqual, c.EndDate)
	addFloat(FieldDistance, OpGreaterEqual, c.DistanceMin)
	addFloat(FieldDistance, OpLessEqual, c.DistanceMax)
	addFloat(FieldVelocity, OpGreaterEqual, c.VelocityMin)
	addFloat(FieldVelocity, OpLessEqual, c.VelocityMax)
	addFloat(FieldDiameter, OpGreaterEqual, c.DiameterMin)
	addFloat(FieldDiameter, OpLessEqual, c.DiameterMax)

	if c.Hazardous != nil {
		fs.Filters = append(fs.Filters, Eq(FieldHazardous, BoolValue(*c.Hazardous)))
	}

	return fs
}

// Parameter names understood by Parse.
const (
	KeyDate        = "date"
	KeyStartDate   = "start_date"
	KeyEndDate     = "end_date"
	KeyMinDistance = "min_distance"
	KeyMaxDistance = "max_distance"
	KeyMinVelocity = "min_velocity"
	KeyMaxVelocity = "max_velocity"
	KeyMinDiameter = "min_diameter"
	KeyMaxDiameter = "max_diameter"
	KeyHazardous   = "hazardous"
)

// Keys lists every parameter name understood by Parse.
var Keys = []string{
	KeyDate, KeyStartDate, KeyEndDate,
	KeyMinDistance, KeyMaxDistance,
	KeyMinVelocity, KeyMaxVelocity,
	KeyMinDiameter, KeyMaxDiameter,
	KeyHazardous,
}

// Parse builds Criteria from string parameters. lookup returns the raw value
// for a key and whether it was supplied. Empty values are treated as absent.
func Parse(lookup func(key string) (string, bool)) (Criteria, error) {
	var c Criteria

	get := func(key string) (string, bool) {
		s, ok := lookup(key)
		s = strings.TrimSpace(s)
		return s, ok && s != ""
	}

	dates := []struct {
		key string
		dst **Date
	}{
		{KeyDate, &c.Date},
		{KeyStartDate, &c.StartDate},
		{KeyEndDate, &c.EndDate},
	}
	for _, d := range dates {
		if s, ok := get(d.key); ok {
			v, err := ParseDate(s)
			if err != nil {
				return Criteria{}, err
			}
			*d.dst = &v
		}
	}

	floats := []struct {
		key string
		dst **float64
	}{
		{KeyMinDistance, &c.DistanceMin},
		{KeyMaxDistance, &c.DistanceMax},
		{KeyMinVelocity, &c.VelocityMin},
		{KeyMaxVelocity, &c.VelocityMax},
		{KeyMinDiameter, &c.DiameterMin},
		{KeyMaxDiameter, &c.DiameterMax},
	}
	for _, f := range floats {
		if s, ok := get(f.key); ok {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Criteria{}, fmt.Errorf("filter: invalid %s %q: %w", f.key, s, err)
			}
			*f.dst = &v
		}
	}

	if s, ok := get(KeyHazardous); ok {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Criteria{}, fmt.Errorf("filter: invalid %s %q: %w", KeyHazardous, s, err)
		}
		c.Hazardous = &v
	}

	return c, nil
}
