/*
Command gnf finds neighboring galaxies by cross-matching a target galaxy
catalog against a reference catalog in three dimensional comoving space.

Contents

Version 1.0

  Program overview
  Installing from the Internet
  Command line usage
  Configuration file
  Catalog file format
  Output format
  Algorithm outline


Program overview

Input is two CSV galaxy catalogs, a target catalog and a reference
catalog, each carrying right ascension, declination and redshift
columns.  Output is a CSV table with one row per target-reference pair
found within the configured angular separation and velocity difference
thresholds, scored and ranked by proximity.

Sample run:

The synth subcommand generates a clustered pair of demonstration
catalogs, so the program can be tried without survey data.

  gnf synth --targets 200 --refs 2000 --out-dir demo
  gnf demo/target.csv demo/reference.csv neighbors.csv

The first command writes demo/target.csv and demo/reference.csv.  The
second cross-matches them and writes neighbors.csv, echoing the first
rows of the result to stdout:

  First 20 results:
  nyuID  RAgal      DECgal      zgal      objID   ...  proximity_score       neighbor_rank
  1      276.50912  -17.270705  0.093377  100140  ...  0.0133117524101384    1
  1      276.50912  -17.270705  0.093377  100120  ...  0.024147858516788626  2

Each output row carries the target's columns, the matched reference
galaxy's columns and four computed fields described below under Output
format.


Installing from the Internet

You need a Go toolchain installed and configured.  If you are new to
Go, see https://golang.org/doc/install.  Then type the following
command:

  go install github.com/galneighbors/gnf@latest

This downloads, compiles and installs the gnf command.


Command line usage

The main executable is gnf.

  Usage: gnf [flags] target_catalog reference_catalog output_file
         gnf synth [flags]      Generate demonstration catalogs.
         gnf -h                 Display help.
         gnf --version          Display version and copyright.

  Flags:
       --config <file>
       --max-neighbors <n>
       --r-proj-max <arcmin>
       --vel-diff-max <km/s>
       --log-level <level>
       --log-file <file>
       --workers <n>
       --no-progress

The three threshold flags override their configuration file
counterparts when given.  Workers limits the number of concurrent
target searches; the default of 0 uses all CPUs.


Configuration file

The optional configuration file named with --config is YAML.  Keys not
present keep their defaults, shown here:

  catalogs:
    rqe:
      column_mapping:
        id: nyuID
        ra: RAgal
        dec: DECgal
        redshift: zgal
    sdss:
      column_mapping:
        id: objID
        ra: galaxy_ra_deg
        dec: galaxy_dec_deg
        redshift: galaxy_z_CMB
  neighbor_search:
    max_neighbors: 500
    r_proj_max_arcmin: 5000.0
    vel_diff_max_kms: 3000.0
  cosmology:
    hubble_constant: 70.0
    matter_density: 0.3
  output:
    format: csv
    include_all_columns: true
  logging:
    level: info
    log_file: ""

The rqe mapping names the target catalog's columns and the sdss mapping
names the reference catalog's columns.  Max_neighbors caps the nearest
neighbor query per target.  R_proj_max_arcmin and vel_diff_max_kms are
the admission thresholds; both must be positive and no larger than
100000.  With include_all_columns false only the id columns and the
computed fields are written.


Catalog file format

Catalogs are CSV files with a header row.  The ra, dec and redshift
columns are located by the configured mapping; when a mapped name is
absent the standard name itself is tried.  The target catalog
additionally needs an id column, the reference catalog does not.

Empty fields and the tokens na, n/a and null, in any letter case, read
as missing values.  Rows with missing coordinates or redshift stay in
the catalog but never satisfy the admission thresholds.

Coordinates are checked on load: right ascension must lie in [0, 360]
degrees, declination in [-90, 90] degrees and redshift in [0, 10].
A catalog with out of range values is rejected.


Output format

The output table carries, in order: the target catalog's columns, the
matched reference galaxy's columns not already named by the target, and
four computed fields.  When a reference column name collides with a
target column the reference value wins in place.  The computed fields
are

  velocity_diff_km_s  velocity difference c * |z1 - z2|
  Rproj_arcmin        angular separation in arcminutes
  proximity_score     weighted closeness, smaller is closer
  neighbor_rank       dense rank of the score within the target

Rows are sorted by target id, numerically when every id parses as a
number, then by ascending score.  Neighbor_rank restarts at 1 for each
target id and repeats on tied scores.  When no pair passes the
thresholds the output file carries only the header row.


Algorithm outline

1.  For each galaxy of both catalogs the program computes the line of
sight comoving distance from its redshift under a flat Lambda-CDM
cosmology, integrating with composite Simpson quadrature.

2.  Each galaxy's sky position and comoving distance become a point in
three dimensional space.

3.  The reference points are indexed in a k-d tree.  For each target
the tree yields the max_neighbors nearest reference points by
Euclidean, that is comoving, distance.

4.  Candidates at exactly zero distance are dropped as the same entry
seen twice.  Each remaining candidate is admitted when its angular
separation on the sky is within r_proj_max_arcmin and its velocity
difference is within vel_diff_max_kms, both inclusive.

5.  Admitted pairs get a proximity score weighting the two ratios
equally:

  score = .5 * sep/r_proj_max + .5 * veldiff/vel_diff_max

A score of 0 would be an identical position and redshift, a score of 1
sits exactly on both thresholds.

6.  The pairs are merged with the catalog columns, sorted and ranked
as described under Output format.

-------------
Public domain.
*/
package main
