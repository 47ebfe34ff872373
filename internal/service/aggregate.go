package service

import (
	"sort"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/worktime"
)

// Aggregate groups reports by calendar date, most recent first, and returns
// the groups plus the grand total over all reports. Dates are compared as
// YYYY-MM-DD strings, never reparsed into timestamps. Within a group the
// store's order is preserved. The function is pure and deterministic.
func Aggregate(reports []internal.Report) ([]internal.DateGroup, float64) {
	byDate := make(map[string]*internal.DateGroup)
	var dates []string

	for _, r := range reports {
		g, ok := byDate[r.Date]
		if !ok {
			g = &internal.DateGroup{Date: r.Date}
			byDate[r.Date] = g
			dates = append(dates, r.Date)
		}
		g.Reports = append(g.Reports, r)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]internal.DateGroup, 0, len(dates))
	var all []float64
	for _, date := range dates {
		g := byDate[date]
		durations := make([]float64, len(g.Reports))
		for i, r := range g.Reports {
			durations[i] = r.DurationHours
		}
		g.Total = worktime.Sum(durations...)
		all = append(all, durations...)
		groups = append(groups, *g)
	}

	return groups, worktime.Sum(all...)
}
