package service

import (
	"fmt"
	"strings"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/worktime"
)

// ComposeMessage renders the aggregated view as a shareable text block: per
// date a header and total, then one line per report. Pure formatting; the
// share channel itself is the caller's concern.
func ComposeMessage(groups []internal.DateGroup, grandTotal float64, notes string) string {
	var b strings.Builder

	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Reporte %s\n", g.Date)
		fmt.Fprintf(&b, "Tiempo total: %s\n\n", worktime.Format(g.Total))
		for _, r := range g.Reports {
			status := "⏳"
			if r.Completed {
				status = "✅"
			}
			fmt.Fprintf(&b, "(%s) %s %s - %s\n", r.Plant, r.Description, status, worktime.Format(r.DurationHours))
		}
	}

	if len(groups) > 1 {
		fmt.Fprintf(&b, "\nTotal general: %s\n", worktime.Format(grandTotal))
	}
	if notes != "" {
		fmt.Fprintf(&b, "\nNovedades:\n%s", notes)
	}

	return b.String()
}
