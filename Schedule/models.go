package Schedule

// DateLayout is the calendar-day format used across the API and the database.
const DateLayout = "2006-01-02"

// Supported recurrence frequencies. Anything else expands to no dates.
const (
	FrequencyWeekly    = "Weekly"
	FrequencyMonthly   = "Monthly"
	FrequencyQuarterly = "Quarterly"
)

// Display status classes for a scheduled date.
const (
	ClassUpcoming = "upcoming"
	ClassPending  = "pending"
	ClassComplete = "complete"
	ClassFault    = "fault"
)

// Human labels matching the status classes. Pending splits into two labels
// depending on whether any inspection records exist yet.
const (
	TextUpcoming   = "Upcoming"
	TextPending    = "Pending"
	TextInProgress = "In Progress"
	TextComplete   = "Complete"
	TextFault      = "Fault"
)

// InspectionOutcome is the slice of an inspection record the reconciler
// cares about: whether the form was submitted, and what condition was found.
type InspectionOutcome struct {
	// InspectionStatus is "pending" or "complete" (form submission state).
	InspectionStatus string
	// Status is "normal", "fault" or "abnormal" (condition found). An empty
	// or unrecognized value counts as normal.
	Status string
}

// DateStatus is the reconciled status of one scheduled date.
type DateStatus struct {
	Class           string
	Text            string
	InspectionCount int
}

// DayStatus is the render-boundary row for one scheduled date, as returned
// by the calendar endpoint. The renderer colors and labels by these fields
// and must not reinterpret them.
type DayStatus struct {
	Date            string `json:"date"`
	StatusClass     string `json:"status_class"`
	StatusText      string `json:"status_text"`
	InspectionCount int    `json:"inspection_count"`
}

// AssetRef is the subset of an asset the location matcher needs.
type AssetRef struct {
	ID       uint
	Location string
}
