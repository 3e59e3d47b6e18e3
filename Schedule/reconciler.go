package Schedule

import (
	"strings"
	"time"
)

// Reconcile computes the single display status of one scheduled date from
// the inspection records matched to it. Priority order:
//
//  1. A strictly future date is always "upcoming", even when records exist
//     (they belong to an earlier occurrence of the same calendar day).
//  2. No records at all means "pending".
//  3. Any record reporting a fault or abnormal condition wins outright.
//  4. Every record submitted and normal means "complete".
//  5. Anything else is still pending, labeled "In Progress" since work has
//     started.
//
// Pure function of its inputs; malformed records degrade to normal.
func Reconcile(date, today time.Time, records []InspectionOutcome) DateStatus {
	if TruncateDay(date).After(TruncateDay(today)) {
		return DateStatus{Class: ClassUpcoming, Text: TextUpcoming, InspectionCount: 0}
	}
	if len(records) == 0 {
		return DateStatus{Class: ClassPending, Text: TextPending, InspectionCount: 0}
	}

	count := len(records)
	allComplete := true
	for _, rec := range records {
		if isFault(rec.Status) {
			return DateStatus{Class: ClassFault, Text: TextFault, InspectionCount: count}
		}
		if normalize(rec.InspectionStatus) != "complete" {
			allComplete = false
		}
	}
	if allComplete {
		return DateStatus{Class: ClassComplete, Text: TextComplete, InspectionCount: count}
	}
	return DateStatus{Class: ClassPending, Text: TextInProgress, InspectionCount: count}
}

// isFault reports whether a condition value counts as a fault. "abnormal"
// is a synonym kept for older records; everything else, including a missing
// value, reads as normal.
func isFault(status string) bool {
	s := normalize(status)
	return s == "fault" || s == "abnormal"
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
