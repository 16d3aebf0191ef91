package writer

import (
	"math"
	"strconv"

	"github.com/hupe1980/neodb/model"
)

// Record is the nested form of one result used by JSON and YAML.
type Record struct {
	DatetimeUTC string     `json:"datetime_utc" yaml:"datetime_utc"`
	DistanceAU  float64    `json:"distance_au" yaml:"distance_au"`
	VelocityKMS float64    `json:"velocity_km_s" yaml:"velocity_km_s"`
	NEO         *NEORecord `json:"neo" yaml:"neo"`
}

// NEORecord holds the linked NEO's fields. DiameterKM is nil when unknown.
type NEORecord struct {
	Designation          string   `json:"designation" yaml:"designation"`
	Name                 string   `json:"name" yaml:"name"`
	DiameterKM           *float64 `json:"diameter_km" yaml:"diameter_km"`
	PotentiallyHazardous bool     `json:"potentially_hazardous" yaml:"potentially_hazardous"`
}

// NewRecord converts an approach.
func NewRecord(ca *model.CloseApproach) Record {
	r := Record{
		DatetimeUTC: ca.TimeString(),
		DistanceAU:  ca.Distance,
		VelocityKMS: ca.Velocity,
	}
	if neo, err := ca.LinkedNEO(); err == nil {
		r.NEO = &NEORecord{
			Designation:          neo.Designation,
			Name:                 neo.Name,
			PotentiallyHazardous: neo.Hazardous,
		}
		if neo.HasDiameter() {
			d := neo.Diameter
			r.NEO.DiameterKM = &d
		}
	}
	return r
}

// row flattens an approach into Columns order for CSV.
func row(ca *model.CloseApproach) []string {
	out := []string{
		ca.TimeString(),
		formatFloat(ca.Distance),
		formatFloat(ca.Velocity),
		ca.Designation,
		"",
		"",
		"",
	}
	if neo, err := ca.LinkedNEO(); err == nil {
		out[4] = neo.Name
		out[5] = formatFloat(neo.Diameter)
		out[6] = formatBool(neo.Hazardous)
	}
	return out
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
