// Package dates handles the dd.MM.yyyy presentation format used by lists
// and CSV exports.
package dates

import (
	"fmt"
	"time"

	"github.com/jsteiner/chargelog/internal/domain"
)

// Layout is the Go reference layout for dd.MM.yyyy.
const Layout = "02.01.2006"

// Format renders t as dd.MM.yyyy, e.g. "15.01.2024".
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse is the exact inverse of Format. It rejects strings that do not match
// the dd.MM.yyyy pattern as well as out-of-range day or month values
// ("32.13.2024" is an error, never silently clamped). The result is midnight
// UTC of the given day.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format %q", domain.ErrValidation, s)
	}
	return t, nil
}
