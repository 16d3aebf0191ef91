package filter

import (
	"math"
	"testing"
	"time"

	"github.com/hupe1980/neodb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approach(t *testing.T, cd string, dist, vel float64, neo *model.NearEarthObject) *model.CloseApproach {
	t.Helper()
	tm, err := model.ParseApproachTime(cd)
	require.NoError(t, err)
	return &model.CloseApproach{Designation: "433", Time: tm, Distance: dist, Velocity: vel, NEO: neo}
}

func TestFilterMatches(t *testing.T) {
	eros := &model.NearEarthObject{Designation: "433", Name: "Eros", Diameter: 16.84}
	unknown := &model.NearEarthObject{Designation: "2020 AB", Diameter: math.NaN(), Hazardous: true}

	ca := approach(t, "2020-Jan-01 08:00", 0.15, 5.0, eros)
	caUnknown := approach(t, "2020-Jan-01 23:59", 0.05, 12.0, unknown)
	orphan := approach(t, "2020-Jan-02 00:00", 0.01, 30.0, nil)

	tests := []struct {
		name   string
		filter Filter
		ca     *model.CloseApproach
		want   bool
	}{
		{"date equal ignores time of day", Eq(FieldDate, DateValue(On(2020, time.January, 1))), ca, true},
		{"date equal late evening", Eq(FieldDate, DateValue(On(2020, time.January, 1))), caUnknown, true},
		{"date equal other day", Eq(FieldDate, DateValue(On(2020, time.January, 2))), ca, false},
		{"start date inclusive", Gte(FieldDate, DateValue(On(2020, time.January, 1))), ca, true},
		{"start date after", Gte(FieldDate, DateValue(On(2020, time.January, 2))), ca, false},
		{"end date inclusive", Lte(FieldDate, DateValue(On(2020, time.January, 1))), ca, true},
		{"end date before", Lte(FieldDate, DateValue(On(2019, time.December, 31))), ca, false},
		{"distance min equal", Gte(FieldDistance, FloatValue(0.15)), ca, true},
		{"distance max", Lte(FieldDistance, FloatValue(0.1)), ca, false},
		{"velocity min", Gte(FieldVelocity, FloatValue(5.1)), ca, false},
		{"velocity max", Lte(FieldVelocity, FloatValue(5.0)), ca, true},
		{"diameter min", Gte(FieldDiameter, FloatValue(10)), ca, true},
		{"diameter max", Lte(FieldDiameter, FloatValue(10)), ca, false},
		{"hazardous false", Eq(FieldHazardous, BoolValue(false)), ca, true},
		{"hazardous true", Eq(FieldHazardous, BoolValue(true)), ca, false},
		{"NaN diameter fails min", Gte(FieldDiameter, FloatValue(0)), caUnknown, false},
		{"NaN diameter fails max", Lte(FieldDiameter, FloatValue(1000)), caUnknown, false},
		{"orphan fails diameter", Gte(FieldDiameter, FloatValue(0)), orphan, false},
		{"orphan fails hazardous false", Eq(FieldHazardous, BoolValue(false)), orphan, false},
		{"orphan passes distance", Lte(FieldDistance, FloatValue(0.02)), orphan, true},
		{"kind mismatch", Eq(FieldDistance, BoolValue(true)), ca, false},
		{"ordered bool never matches", Gte(FieldHazardous, BoolValue(false)), ca, false},
		{"ordered bool never matches lte", Lte(FieldHazardous, BoolValue(false)), ca, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.ca))
		})
	}
}

func TestSetMatches(t *testing.T) {
	eros := &model.NearEarthObject{Designation: "433", Name: "Eros", Diameter: 16.84}
	ca := approach(t, "2020-Jan-01 00:00", 0.15, 5.0, eros)

	var nilSet *Set
	assert.True(t, nilSet.Matches(ca))
	assert.True(t, And().Matches(ca))

	fs := And(
		Gte(FieldDistance, FloatValue(0.1)),
		Lte(FieldDistance, FloatValue(0.2)),
		Eq(FieldHazardous, BoolValue(false)),
	)
	assert.True(t, fs.Matches(ca))
	assert.True(t, fs.NeedsNEO())
	assert.Equal(t, "distance >= 0.1 AND distance <= 0.2 AND hazardous == false", fs.String())

	fs.Filters = append(fs.Filters, Gte(FieldVelocity, FloatValue(10)))
	assert.False(t, fs.Matches(ca))
}

func TestCriteriaCompile(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.Equal(t, 0, Criteria{}.Compile().Len())

	c := Criteria{
		Date:        Ptr(On(2020, time.January, 1)),
		StartDate:   Ptr(On(2019, time.January, 1)),
		EndDate:     Ptr(On(2021, time.January, 1)),
		DistanceMin: Ptr(0.1),
		DistanceMax: Ptr(0.2),
		VelocityMin: Ptr(1.0),
		VelocityMax: Ptr(50.0),
		DiameterMin: Ptr(1.0),
		DiameterMax: Ptr(20.0),
		Hazardous:   Ptr(false),
	}
	assert.False(t, c.IsZero())

	fs := c.Compile()
	require.Equal(t, 10, fs.Len())

	haz, ok := fs.Hazardous()
	assert.True(t, ok)
	assert.False(t, haz)

	// Approach-level filters precede NEO-level ones.
	for i, f := range fs.Filters {
		if f.Field.NEOLevel() {
			for _, rest := range fs.Filters[i:] {
				assert.True(t, rest.Field.NEOLevel())
			}
			break
		}
	}

	eros := &model.NearEarthObject{Designation: "433", Name: "Eros", Diameter: 16.84}
	assert.True(t, fs.Matches(approach(t, "2020-Jan-01 12:00", 0.15, 5.0, eros)))
}

func TestHazardousTriState(t *testing.T) {
	_, ok := Criteria{}.Compile().Hazardous()
	assert.False(t, ok)

	v, ok := Criteria{Hazardous: Ptr(false)}.Compile().Hazardous()
	assert.True(t, ok)
	assert.False(t, v)

	v, ok = Criteria{Hazardous: Ptr(true)}.Compile().Hazardous()
	assert.True(t, ok)
	assert.True(t, v)
}

func TestParse(t *testing.T) {
	params := map[string]string{
		KeyDate:        "2020-01-01",
		KeyMinDistance: "0.1",
		KeyMaxVelocity: " 25 ",
		KeyHazardous:   "false",
		KeyEndDate:     "",
	}
	c, err := Parse(func(key string) (string, bool) {
		v, ok := params[key]
		return v, ok
	})
	require.NoError(t, err)

	require.NotNil(t, c.Date)
	assert.Equal(t, On(2020, time.January, 1), *c.Date)
	require.NotNil(t, c.DistanceMin)
	assert.InDelta(t, 0.1, *c.DistanceMin, 1e-12)
	require.NotNil(t, c.VelocityMax)
	assert.InDelta(t, 25.0, *c.VelocityMax, 1e-12)
	require.NotNil(t, c.Hazardous)
	assert.False(t, *c.Hazardous)
	assert.Nil(t, c.EndDate)
	assert.Nil(t, c.StartDate)
	assert.Nil(t, c.DiameterMin)

	_, err = Parse(func(key string) (string, bool) {
		if key == KeyStartDate {
			return "2020/01/01", true
		}
		return "", false
	})
	assert.Error(t, err)

	_, err = Parse(func(key string) (string, bool) {
		if key == KeyMinDiameter {
			return "wide", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2020-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29", d.String())

	assert.Equal(t, -1, On(2020, time.January, 31).Compare(On(2020, time.February, 1)))
	assert.Equal(t, 1, On(2021, time.January, 1).Compare(On(2020, time.December, 31)))
	assert.Equal(t, 0, DateOf(time.Date(2020, time.March, 3, 23, 59, 0, 0, time.UTC)).Compare(On(2020, time.March, 3)))

	var u Date
	require.NoError(t, u.UnmarshalText([]byte("1999-12-31")))
	assert.Equal(t, On(1999, time.December, 31), u)
	assert.Error(t, u.UnmarshalText([]byte("tomorrow")))
}
