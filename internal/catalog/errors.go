// Public domain.

package catalog

import (
	"fmt"
	"strings"
)

// SchemaError reports a column required for an operation that is not
// present in the file, after name mapping.
type SchemaError struct {
	Catalog   string   // catalog label
	Column    string   // resolved file column name
	Available []string // columns the file does have
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog %s: missing required column %q (have %s)",
		e.Catalog, e.Column, strings.Join(e.Available, ", "))
}

// RangeError reports parsed values outside the physical range for a
// standard column.  NaN values take no part in range checks.
type RangeError struct {
	Catalog string
	Field   string // standard column name
	Lo      float64
	Hi      float64 // allowed range, inclusive
	FoundLo float64
	FoundHi float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("catalog %s: %s values outside [%g, %g], found [%g, %g]",
		e.Catalog, e.Field, e.Lo, e.Hi, e.FoundLo, e.FoundHi)
}
