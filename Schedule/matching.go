package Schedule

import "strings"

// MatchAssets returns the assets whose location equals the task name after
// trimming whitespace on both sides. The comparison is case-sensitive. A
// task name that matches nothing returns an empty slice, and callers must
// treat that as "no inspections to show" rather than falling back to the
// whole asset pool — mixing every record onto one task's calendar is worse
// than an empty one.
func MatchAssets(taskName string, assets []AssetRef) []AssetRef {
	name := strings.TrimSpace(taskName)
	var matched []AssetRef
	for _, a := range assets {
		if strings.TrimSpace(a.Location) == name {
			matched = append(matched, a)
		}
	}
	return matched
}
