// Public domain.

package gnfprog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDemo writes a pair of catalogs in the default RQE and SDSS
// layouts.  Each target has exactly one admissible reference, the
// third reference row is far away on both axes.
func writeDemo(t *testing.T, dir string) (tpath, rpath string) {
	t.Helper()
	tpath = filepath.Join(dir, "t.csv")
	rpath = filepath.Join(dir, "r.csv")
	require.NoError(t, os.WriteFile(tpath, []byte(
		"nyuID,RAgal,DECgal,zgal\n1,120.0,10.0,0.05\n2,240.0,-10.0,0.2\n"), 0644))
	require.NoError(t, os.WriteFile(rpath, []byte(
		"objID,galaxy_ra_deg,galaxy_dec_deg,galaxy_z_CMB\n"+
			"501,120.1,10.0,0.0505\n502,240.0,-10.05,0.1995\n503,0.0,50.0,1.5\n"), 0644))
	return tpath, rpath
}

func TestRootCmdRun(t *testing.T) {
	dir := t.TempDir()
	tpath, rpath := writeDemo(t, dir)
	opath := filepath.Join(dir, "out.csv")

	cmd := rootCmd()
	cmd.SetArgs([]string{"--no-progress", "--log-level", "error", tpath, rpath, opath})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(opath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"nyuID,RAgal,DECgal,zgal,objID,galaxy_ra_deg,galaxy_dec_deg,galaxy_z_CMB,"+
			"velocity_diff_km_s,Rproj_arcmin,proximity_score,neighbor_rank",
		lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,120.0,10.0,0.05,501,120.1,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], ",1"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2,240.0,-10.0,0.2,502,240.0,"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], ",1"), lines[2])
}

func TestRootCmdThresholdFlag(t *testing.T) {
	dir := t.TempDir()
	tpath, rpath := writeDemo(t, dir)
	opath := filepath.Join(dir, "out.csv")

	cmd := rootCmd()
	cmd.SetArgs([]string{"--no-progress", "--log-level", "error",
		"--r-proj-max", "0.001", tpath, rpath, opath})
	require.NoError(t, cmd.Execute())

	// header only when nothing passes the thresholds
	b, err := os.ReadFile(opath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "\n"))
	assert.True(t, strings.HasPrefix(string(b), "nyuID,"))
}

func TestRootCmdConfigFile(t *testing.T) {
	dir := t.TempDir()
	tpath, rpath := writeDemo(t, dir)
	opath := filepath.Join(dir, "out.csv")
	cpath := filepath.Join(dir, "gnf.yaml")
	require.NoError(t, os.WriteFile(cpath, []byte(
		"neighbor_search:\n  vel_diff_max_kms: 1.0\nlogging:\n  level: error\n"), 0644))

	cmd := rootCmd()
	cmd.SetArgs([]string{"--no-progress", "--config", cpath, tpath, rpath, opath})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(opath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "\n"))
}

func TestRootCmdBadArgs(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"one", "two"})
	assert.Error(t, cmd.Execute())
}

func TestRootCmdMissingCatalog(t *testing.T) {
	dir := t.TempDir()
	cmd := rootCmd()
	cmd.SetArgs([]string{"--no-progress", "--log-level", "error",
		filepath.Join(dir, "absent.csv"),
		filepath.Join(dir, "absent2.csv"),
		filepath.Join(dir, "out.csv")})
	assert.Error(t, cmd.Execute())
}

func TestRootCmdSynth(t *testing.T) {
	dir := t.TempDir()
	cmd := rootCmd()
	cmd.SetArgs([]string{"synth", "--targets", "5", "--refs", "10", "--out-dir", dir})
	require.NoError(t, cmd.Execute())
	for _, name := range []string{"target.csv", "reference.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
