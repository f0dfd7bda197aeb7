// Public domain.

// Package gnfprog implements the gnf command line program.
package gnfprog

import (
	"fmt"
	"os"

	"github.com/galneighbors/gnf/internal/catalog"
	"github.com/galneighbors/gnf/internal/config"
	"github.com/galneighbors/gnf/internal/cosmo"
	"github.com/galneighbors/gnf/internal/finder"
	"github.com/schollz/progressbar/v2"
	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"
)

const versionString = "gnf version 1.0 Go source."
const copyrightString = "Public domain."

// Main runs the program.
func Main() {
	defer exit.Handler()

	if err := rootCmd().Execute(); err != nil {
		exit.Log(err)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath   string
		maxNeighbors int
		rProjMax     float64
		velDiffMax   float64
		logLevel     string
		logFile      string
		workers      int
		noProgress   bool
	)
	cmd := &cobra.Command{
		Use:   "gnf [flags] target_catalog reference_catalog output_file",
		Short: "Find neighboring galaxies in astronomical catalogs",
		Long: `gnf cross-matches a target galaxy catalog against a reference
catalog in comoving space and writes the scored neighbor pairs as CSV.

Both catalogs are CSV files carrying at least right ascension,
declination and redshift columns; the target catalog also needs an id
column.  Column names are resolved through the configuration, which
ships with mappings for RQE targets and SDSS references.`,
		Version:       versionString + "\n" + copyrightString,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			// flags override the configuration file only when given
			fl := cmd.Flags()
			if fl.Changed("max-neighbors") {
				cfg.Set("neighbor_search.max_neighbors", maxNeighbors)
			}
			if fl.Changed("r-proj-max") {
				cfg.Set("neighbor_search.r_proj_max_arcmin", rProjMax)
			}
			if fl.Changed("vel-diff-max") {
				cfg.Set("neighbor_search.vel_diff_max_kms", velDiffMax)
			}
			if fl.Changed("log-level") {
				cfg.Set("logging.level", logLevel)
			}
			if fl.Changed("log-file") {
				cfg.Set("logging.log_file", logFile)
			}
			return run(cmd, args, cfg, workers, noProgress)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	fl := cmd.Flags()
	fl.StringVar(&configPath, "config", "",
		"YAML configuration file with search parameters")
	fl.IntVar(&maxNeighbors, "max-neighbors", finder.DefaultMaxNeighbors,
		"maximum neighbors per target")
	fl.Float64Var(&rProjMax, "r-proj-max", finder.DefaultRProjMax,
		"maximum angular separation in arcminutes")
	fl.Float64Var(&velDiffMax, "vel-diff-max", finder.DefaultVelDiffMax,
		"maximum velocity difference in km/s")
	fl.StringVar(&logLevel, "log-level", "info",
		"logging verbosity: debug, info, warn or error")
	fl.StringVar(&logFile, "log-file", "", "optional log file path")
	fl.IntVar(&workers, "workers", 0,
		"concurrent target searches, 0 means all CPUs")
	fl.BoolVar(&noProgress, "no-progress", false, "suppress the progress bar")
	cmd.AddCommand(synthCmd())
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(cmd *cobra.Command, args []string, cfg *config.Config, workers int, noProgress bool) error {
	lg, err := newLogger(
		cfg.GetString("logging.level", "info"),
		cfg.GetString("logging.log_file", ""))
	if err != nil {
		return err
	}
	lg.Info().Msg("gnf started")
	lg.Debug().Str("config", cfg.String()).Msg("effective configuration")

	target, err := catalog.Load(args[0], "target",
		cfg.StringMap("catalogs.rqe.column_mapping"), lg)
	if err != nil {
		return err
	}
	ref, err := catalog.Load(args[1], "reference",
		cfg.StringMap("catalogs.sdss.column_mapping"), lg)
	if err != nil {
		return err
	}

	cos := cosmo.New(
		cfg.GetFloat("cosmology.hubble_constant", cosmo.DefaultH0),
		cfg.GetFloat("cosmology.matter_density", cosmo.DefaultOmegaM))
	f := finder.New(target, ref, cos, lg)

	p := finder.Params{
		MaxNeighbors: cfg.GetInt("neighbor_search.max_neighbors", finder.DefaultMaxNeighbors),
		RProjMax:     cfg.GetFloat("neighbor_search.r_proj_max_arcmin", finder.DefaultRProjMax),
		VelDiffMax:   cfg.GetFloat("neighbor_search.vel_diff_max_kms", finder.DefaultVelDiffMax),
		Workers:      workers,
	}
	if !noProgress {
		bar := progressbar.NewOptions(target.Len(),
			progressbar.OptionSetDescription("matching"),
			progressbar.OptionSetWriter(os.Stderr))
		p.Progress = func(done, total int) { _ = bar.Add(1) }
	}

	res, err := f.FindNeighbors(cmd.Context(), p)
	if !noProgress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	cols := outputColumns(res, target, ref, cfg.GetBool("output.include_all_columns", true))
	if err := saveResults(args[2], res, cols); err != nil {
		return err
	}
	if res.Len() == 0 {
		lg.Warn().Str("path", args[2]).Msg("no neighbors found, wrote header only")
	} else {
		lg.Info().
			Str("path", args[2]).
			Int("neighbors", res.Len()).
			Msg("results saved")
		fmt.Println("First 20 results:")
		headEcho(os.Stdout, res, 20)
	}
	lg.Info().Msg("gnf completed")
	return nil
}
