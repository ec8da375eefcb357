package export

import (
	"fmt"
	"strings"
	"time"
)

// Export filename prefixes; the timestamp suffix avoids collisions between
// batch runs.
const (
	FlatPrefix       = "image_analysis"
	StructuredPrefix = "structured_data"

	timestampLayout = "20060102_150405"
)

// BuildFilename returns "<prefix>_<YYYYMMDD_HHMMSS>.csv".
func BuildFilename(prefix string, t time.Time) string {
	return buildFilename(prefix, "csv", t)
}

// BuildXLSXFilename returns "<prefix>_<YYYYMMDD_HHMMSS>.xlsx".
func BuildXLSXFilename(prefix string, t time.Time) string {
	return buildFilename(prefix, "xlsx", t)
}

func buildFilename(prefix, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(prefix), t.Format(timestampLayout), ext)
}

// SanitizeFilename strips path separators and control characters so a
// caller-supplied prefix cannot escape the output directory.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':':
			b.WriteRune('_')
		case r < 0x20 || r == 0x7f:
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
