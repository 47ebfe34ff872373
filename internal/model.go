package internal

// ReportDraft is an in-progress report as entered by a technician. Time is
// carried as an (hours, minutes) pair until submission, when it is encoded
// into decimal hours exactly once.
type ReportDraft struct {
	Date        string `json:"date"` // calendar date, YYYY-MM-DD
	Technician  string `json:"technician"`
	Plant       string `json:"plant"`
	WorkOrder   string `json:"workOrder"`
	Description string `json:"description"`
	Hours       int    `json:"hours"`
	Minutes     int    `json:"minutes"`
	Completed   bool   `json:"completed"`
}

// Report is a persisted unit of completed work. The id is assigned by the
// remote store and never changes. DurationHours is derived from the draft's
// hours/minutes pair at submission time; the pair itself is not stored.
type Report struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"` // calendar date, YYYY-MM-DD
	Technician    string  `json:"technician"`
	Plant         string  `json:"plant"`
	WorkOrder     string  `json:"workOrder"`
	Description   string  `json:"description"`
	DurationHours float64 `json:"durationHours"`
	Completed     bool    `json:"completed"`
}

// DateGroup is a derived view: the reports of one calendar date in store
// order plus their summed duration. It is rebuilt on every aggregation and
// never persisted.
type DateGroup struct {
	Date    string
	Reports []Report
	Total   float64
}
