package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// ApproachTimeLayout is the compact calendar-date layout used by CAD data.
	ApproachTimeLayout = "2006-Jan-02 15:04"

	// OutputTimeLayout is the layout used by writers and human-readable output.
	OutputTimeLayout = "2006-01-02 15:04"
)

// NewNearEarthObject builds an unlinked NEO from raw string fields.
//
// An empty name means "no name". An empty diameter is stored as NaN.
// Hazardous is true only for the value "Y".
func NewNearEarthObject(designation, name, diameter, hazardous string) (*NearEarthObject, error) {
	designation = strings.TrimSpace(designation)
	if designation == "" {
		return nil, ErrEmptyDesignation
	}

	d, err := parseOptionalFloat("diameter", diameter)
	if err != nil {
		return nil, err
	}

	return &NearEarthObject{
		Designation: designation,
		Name:        strings.TrimSpace(name),
		Diameter:    d,
		Hazardous:   strings.TrimSpace(hazardous) == "Y",
	}, nil
}

// NewCloseApproach builds an unlinked approach from raw string fields.
func NewCloseApproach(designation, cd, distance, velocity string) (*CloseApproach, error) {
	designation = strings.TrimSpace(designation)
	if designation == "" {
		return nil, ErrEmptyDesignation
	}

	t, err := ParseApproachTime(cd)
	if err != nil {
		return nil, err
	}

	dist, err := parseFloat("distance", distance)
	if err != nil {
		return nil, err
	}

	vel, err := parseFloat("velocity", velocity)
	if err != nil {
		return nil, err
	}

	return &CloseApproach{
		Designation: designation,
		Time:        t,
		Distance:    dist,
		Velocity:    vel,
	}, nil
}

// ParseApproachTime parses a CAD calendar date such as "2020-Jan-01 00:00" as UTC.
func ParseApproachTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ApproachTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{Field: "time", Value: s, cause: err}
	}
	return t, nil
}

// FormatTime renders t with OutputTimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(OutputTimeLayout)
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s, cause: err}
	}
	return v, nil
}

func parseOptionalFloat(field, s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return math.NaN(), nil
	}
	return parseFloat(field, s)
}
