// Public domain.

package gnfprog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	xrand "golang.org/x/exp/rand"
)

func synthCmd() *cobra.Command {
	var (
		targets int
		refs    int
		seed    uint64
		outDir  string
	)
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate synthetic demonstration catalogs",
		Long: `Generate a clustered pair of galaxy catalogs, target.csv and
reference.csv, in the output directory.  Galaxies of both catalogs
scatter around shared cluster centers, so a search with default
thresholds finds neighbors for most targets.  The files use the RQE
and SDSS column names of the default configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return synth(targets, refs, seed, outDir)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&targets, "targets", 200, "target catalog size")
	fl.IntVar(&refs, "refs", 2000, "reference catalog size")
	fl.Uint64Var(&seed, "seed", 1, "random seed")
	fl.StringVar(&outDir, "out-dir", ".", "directory for the generated catalogs")
	return cmd
}

func synth(targets, refs int, seed uint64, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("synth: %w", err)
	}
	src := &xrand.PCGSource{}
	src.Seed(seed)
	rnd := xrand.New(src)

	const clusters = 20
	type center struct{ ra, dec, z float64 }
	cs := make([]center, clusters)
	for i := range cs {
		cs[i] = center{
			ra:  5 + rnd.Float64()*350,
			dec: -60 + rnd.Float64()*120,
			z:   .02 + rnd.Float64()*.23,
		}
	}
	// jitter keeps coordinates inside catalog ranges: ra stays within
	// [4.8, 355.2], dec within [-60.2, 60.2], z above .017.
	jitter := func(c center) (ra, dec, z float64) {
		return c.ra + (rnd.Float64()-.5)*.4,
			c.dec + (rnd.Float64()-.5)*.4,
			c.z + (rnd.Float64()-.5)*.006
	}

	tpath := filepath.Join(outDir, "target.csv")
	err := writeSynth(tpath, "nyuID,RAgal,DECgal,zgal", targets, func(i int) []string {
		ra, dec, z := jitter(cs[i%clusters])
		return []string{strconv.Itoa(i + 1), fmtF(ra), fmtF(dec), fmtF(z)}
	})
	if err != nil {
		return err
	}
	rpath := filepath.Join(outDir, "reference.csv")
	err = writeSynth(rpath, "objID,galaxy_ra_deg,galaxy_dec_deg,galaxy_z_CMB", refs, func(i int) []string {
		ra, dec, z := jitter(cs[i%clusters])
		return []string{strconv.Itoa(100000 + i), fmtF(ra), fmtF(dec), fmtF(z)}
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d rows) and %s (%d rows)\n", tpath, targets, rpath, refs)
	return nil
}

func writeSynth(path, header string, n int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("synth: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(strings.Split(header, ",")); err != nil {
		f.Close()
		return fmt.Errorf("synth: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			f.Close()
			return fmt.Errorf("synth: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("synth: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("synth: %w", err)
	}
	return nil
}

func fmtF(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
