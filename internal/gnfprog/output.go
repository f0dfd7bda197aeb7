// Public domain.

package gnfprog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/galneighbors/gnf/internal/catalog"
	"github.com/galneighbors/gnf/internal/finder"
)

// saveResults writes the result table as CSV at path.  An empty table
// still gets its header row so downstream tooling sees the layout.
func saveResults(path string, res *finder.Result, cols []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := writeCSV(f, res, cols); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, res *finder.Result, cols []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(selectFields(res.Header(), cols)); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	for k := 0; k < res.Len(); k++ {
		if err := cw.Write(selectFields(res.Record(k), cols)); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// outputColumns returns the header positions to write.  With all true
// that is every column, otherwise the catalog id columns that resolve
// plus the computed fields.
func outputColumns(res *finder.Result, target, ref *catalog.Catalog, all bool) []int {
	hdr := res.Header()
	if all {
		cols := make([]int, len(hdr))
		for i := range cols {
			cols[i] = i
		}
		return cols
	}
	keep := make(map[string]bool, 6)
	if id, err := target.Column(catalog.ColID); err == nil {
		keep[id] = true
	}
	if id, err := ref.Column(catalog.ColID); err == nil {
		keep[id] = true
	}
	keep[finder.ColVelDiff] = true
	keep[finder.ColRProj] = true
	keep[finder.ColScore] = true
	keep[finder.ColRank] = true
	var cols []int
	for i, h := range hdr {
		if keep[h] {
			cols = append(cols, i)
		}
	}
	return cols
}

func selectFields(rec []string, cols []int) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = rec[c]
	}
	return out
}

// headEcho prints the first n result rows as an aligned table.
func headEcho(w io.Writer, res *finder.Result, n int) {
	if res.Len() < n {
		n = res.Len()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Header(), "\t"))
	for k := 0; k < n; k++ {
		fmt.Fprintln(tw, strings.Join(res.Record(k), "\t"))
	}
	tw.Flush()
}
