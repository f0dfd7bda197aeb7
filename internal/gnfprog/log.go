// Public domain.

package gnfprog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// newLogger builds the program logger: human readable console output
// on stderr and, when file is not empty, JSON lines appended there as
// well.  The file handle stays open for the life of the process.
func newLogger(level, file string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(normalizeLevel(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	var w io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}
	if file != "" {
		if dir := filepath.Dir(file); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return zerolog.Nop(), fmt.Errorf("log file: %w", err)
			}
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(w, f)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// normalizeLevel maps conventional level spellings onto zerolog names.
func normalizeLevel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return "warn"
	}
	return s
}
