// Public domain.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/galneighbors/gnf/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := config.Default()
	assert.Equal(t, 500, c.GetInt("neighbor_search.max_neighbors", 0))
	assert.Equal(t, 5000.0, c.GetFloat("neighbor_search.r_proj_max_arcmin", 0))
	assert.Equal(t, 3000.0, c.GetFloat("neighbor_search.vel_diff_max_kms", 0))
	assert.Equal(t, 70.0, c.GetFloat("cosmology.hubble_constant", 0))
	assert.Equal(t, 0.3, c.GetFloat("cosmology.matter_density", 0))
	assert.Equal(t, "info", c.GetString("logging.level", ""))
	assert.True(t, c.GetBool("output.include_all_columns", false))

	m := c.StringMap("catalogs.rqe.column_mapping")
	require.NotNil(t, m)
	assert.Equal(t, "RAgal", m["ra"])
	assert.Equal(t, "nyuID", m["id"])
	assert.Equal(t, "objID", c.StringMap("catalogs.sdss.column_mapping")["id"])
}

func TestLoadMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gnf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
neighbor_search:
  max_neighbors: 42
catalogs:
  sdss:
    column_mapping:
      id: specObjID
extra:
  knob: 7
`), 0644))
	c, err := config.Load(path)
	require.NoError(t, err)

	// overridden
	assert.Equal(t, 42, c.GetInt("neighbor_search.max_neighbors", 0))
	assert.Equal(t, "specObjID", c.StringMap("catalogs.sdss.column_mapping")["id"])
	// siblings of overridden keys keep their defaults
	assert.Equal(t, 3000.0, c.GetFloat("neighbor_search.vel_diff_max_kms", 0))
	assert.Equal(t, "galaxy_ra_deg", c.StringMap("catalogs.sdss.column_mapping")["ra"])
	assert.Equal(t, "RAgal", c.StringMap("catalogs.rqe.column_mapping")["ra"])
	// novel keys appear
	assert.Equal(t, 7, c.GetInt("extra.knob", 0))
}

func TestSet(t *testing.T) {
	c := config.Default()
	c.Set("neighbor_search.max_neighbors", 7)
	assert.Equal(t, 7, c.GetInt("neighbor_search.max_neighbors", 0))
	c.Set("a.b.c", "deep")
	assert.Equal(t, "deep", c.GetString("a.b.c", ""))
}

func TestGetMissing(t *testing.T) {
	c := config.Default()
	assert.Equal(t, 11, c.GetInt("no.such.path", 11))
	assert.Equal(t, "fallback", c.GetString("logging.level.too.deep", "fallback"))
	assert.Nil(t, c.StringMap("logging.level"))
}

func TestLoadBad(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ]["), 0644))
	_, err = config.Load(path)
	require.Error(t, err)
}

func TestString(t *testing.T) {
	s := config.Default().String()
	assert.Contains(t, s, "neighbor_search")
	assert.Contains(t, s, "max_neighbors")
}
