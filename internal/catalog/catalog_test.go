// Public domain.

package catalog_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/galneighbors/gnf/internal/catalog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rqeMapping = map[string]string{
	"ra":       "RAgal",
	"dec":      "DECgal",
	"redshift": "zgal",
	"id":       "nyuID",
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMapping(t *testing.T) {
	path := writeCSV(t, "rqe.csv", `nyuID,RAgal,DECgal,zgal,flag
101,150.25,2.5,0.0450,a
102,210.0,-12.125,0.1,b
`)
	c, err := catalog.Load(path, "target", rqeMapping, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"nyuID", "RAgal", "DECgal", "zgal", "flag"}, c.Header())
	assert.InDelta(t, 150.25*math.Pi/180, c.RA(0).Rad(), 1e-12)
	assert.InDelta(t, -12.125, c.Dec(1).Deg(), 1e-12)
	assert.Equal(t, 0.045, c.Z(0))
	assert.Equal(t, []string{"102", "210.0", "-12.125", "0.1", "b"}, c.Row(1))

	id, err := c.Column("id")
	require.NoError(t, err)
	assert.Equal(t, "nyuID", id)
	i, ok := c.Index("flag")
	require.True(t, ok)
	assert.Equal(t, 4, i)
}

func TestLoadFallback(t *testing.T) {
	// unmapped standard names pass through, id may be absent until ranking
	path := writeCSV(t, "std.csv", "ra,dec,redshift\n10,20,0.5\n")
	c, err := catalog.Load(path, "ref", nil, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	_, err = c.Column("id")
	var se *catalog.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "id", se.Column)
	assert.Equal(t, "ref", se.Catalog)
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeCSV(t, "bad.csv", "nyuID,RAgal,zgal\n1,10,0.1\n")
	_, err := catalog.Load(path, "target", rqeMapping, zerolog.Nop())
	var se *catalog.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "DECgal", se.Column)
	assert.Equal(t, []string{"nyuID", "RAgal", "zgal"}, se.Available)
}

func TestLoadRange(t *testing.T) {
	for _, tc := range []struct {
		name, csv, field string
	}{
		{"ra low", "ra,dec,redshift\n-3,5,0.1\n", "ra"},
		{"dec high", "ra,dec,redshift\n10,95,0.1\n", "dec"},
		{"z high", "ra,dec,redshift\n10,5,10.5\n", "redshift"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCSV(t, "r.csv", tc.csv)
			_, err := catalog.Load(path, "ref", nil, zerolog.Nop())
			var re *catalog.RangeError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tc.field, re.Field)
		})
	}
}

func TestLoadNaN(t *testing.T) {
	// missing values load as NaN and take no part in range checks
	path := writeCSV(t, "nan.csv", "ra,dec,redshift\n10,5,\n20,6,nan\n30,7,NULL\n")
	c, err := catalog.Load(path, "ref", nil, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(c.Z(i)), "row %d", i)
	}
}

func TestLoadRAWrap(t *testing.T) {
	// 360 is inside the valid range and equivalent to 0 on the circle
	c, err := catalog.Load(writeCSV(t, "w.csv", "ra,dec,redshift\n360,0,0.1\n"),
		"ref", nil, zerolog.Nop())
	require.NoError(t, err)
	assert.InDelta(t, 0, math.Sin(c.RA(0).Rad()), 1e-9)
	assert.InDelta(t, 1, math.Cos(c.RA(0).Rad()), 1e-9)
}

func TestLoadEmpty(t *testing.T) {
	_, err := catalog.Load(writeCSV(t, "e.csv", ""), "ref", nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")

	c, err := catalog.Load(writeCSV(t, "h.csv", "ra,dec,redshift\n"),
		"ref", nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadBadNumeric(t *testing.T) {
	path := writeCSV(t, "b.csv", "ra,dec,redshift\nabc,5,0.1\n")
	_, err := catalog.Load(path, "ref", nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad numeric field")
	assert.Contains(t, err.Error(), "row 1")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.csv"),
		"ref", nil, zerolog.Nop())
	require.Error(t, err)
}
