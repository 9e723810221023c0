package export

import (
	"fmt"
	"strings"
	"time"
)

// FileName builds the deterministic artifact name
// <report-type>_<subject>_<month>_<year>.<ext>, with spaces replaced by
// underscores. Subject may be empty for class-wide reports.
func FileName(reportType, subject string, month time.Month, year int, ext string) string {
	parts := []string{reportType}
	if subject != "" {
		parts = append(parts, subject)
	}
	parts = append(parts, fmt.Sprintf("%d", int(month)), fmt.Sprintf("%d", year))

	name := strings.Join(parts, "_") + "." + ext
	return strings.ReplaceAll(name, " ", "_")
}
