package writer

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/hupe1980/neodb/blobstore"
	"github.com/hupe1980/neodb/codec"
	"github.com/hupe1980/neodb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func fixture(t *testing.T) []*model.CloseApproach {
	t.Helper()

	eros, err := model.NewNearEarthObject("433", "Eros", "16.84", "N")
	require.NoError(t, err)
	aa, err := model.NewNearEarthObject("2019 AA", "", "", "Y")
	require.NoError(t, err)

	c1, err := model.NewCloseApproach("433", "2020-Jan-01 00:00", "0.15", "5")
	require.NoError(t, err)
	c2, err := model.NewCloseApproach("2019 AA", "2020-Feb-03 04:05", "0.01", "12.5")
	require.NoError(t, err)
	orphan, err := model.NewCloseApproach("9999 ZZ", "2020-Mar-01 00:00", "0.3", "1")
	require.NoError(t, err)

	c1.NEO, c2.NEO = eros, aa
	return []*model.CloseApproach{c1, c2, orphan}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(FormatCSV, &buf, slices.Values(fixture(t))))

	want := `datetime_utc,distance_au,velocity_km_s,designation,name,diameter_km,potentially_hazardous
2020-01-01 00:00,0.15,5,433,Eros,16.84,False
2020-02-03 04:05,0.01,12.5,2019 AA,,nan,True
2020-03-01 00:00,0.3,1,9999 ZZ,,,
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(FormatJSON, &buf, slices.Values(fixture(t)), WithCodec(c)))

			var got []map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
			require.Len(t, got, 3)

			assert.Equal(t, "2020-01-01 00:00", got[0]["datetime_utc"])
			assert.Equal(t, 0.15, got[0]["distance_au"])
			assert.Equal(t, map[string]any{
				"designation":           "433",
				"name":                  "Eros",
				"diameter_km":           16.84,
				"potentially_hazardous": false,
			}, got[0]["neo"])

			neo := got[1]["neo"].(map[string]any)
			assert.Nil(t, neo["diameter_km"])
			assert.Equal(t, "", neo["name"])

			assert.Nil(t, got[2]["neo"])
		})
	}
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(FormatJSON, &buf, slices.Values([]*model.CloseApproach(nil))))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(FormatYAML, &buf, slices.Values(fixture(t))))

	var got []Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "433", got[0].NEO.Designation)
	require.NotNil(t, got[0].NEO.DiameterKM)
	assert.InDelta(t, 16.84, *got[0].NEO.DiameterKM, 1e-9)
	assert.Nil(t, got[1].NEO.DiameterKM)
	assert.True(t, got[1].NEO.PotentiallyHazardous)
	assert.Nil(t, got[2].NEO)
	assert.Contains(t, buf.String(), "diameter_km: null")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(FormatXLSX, &buf, slices.Values(fixture(t))))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"2020-01-01 00:00", "0.15", "5", "433", "Eros", "16.84", "FALSE"}, rows[1])
	assert.Equal(t, "9999 ZZ", rows[3][3])
}

func TestNewRecord_NaN(t *testing.T) {
	ca := fixture(t)[1]
	require.True(t, math.IsNaN(ca.NEO.Diameter))
	assert.Nil(t, NewRecord(ca).NEO.DiameterKM)
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.csv", FormatCSV},
		{"dir/out.JSON", FormatJSON},
		{"out.yml", FormatYAML},
		{"out.yaml", FormatYAML},
		{"report.xlsx", FormatXLSX},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatForPath("out.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = FormatForPath("out")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, Save(ctx, store, "results/out.csv", slices.Values(fixture(t))))

	b, err := store.Open(ctx, "results/out.csv")
	require.NoError(t, err)
	data, err := blobstore.ReadAll(b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), strings.Join(Columns, ",")+"\n"))

	assert.ErrorIs(t, Save(ctx, store, "out.txt", slices.Values(fixture(t))), ErrUnknownFormat)
}
