package Schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

var monthsByName = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// ExpandDates turns a recurrence definition into the ordered set of concrete
// calendar dates it schedules. The periods map comes straight from the
// schedule's JSON column and its shape depends on the frequency:
//
//	Weekly:    month name -> week key (Week1..Week4) -> "YYYY-MM-DD"
//	Monthly:   month name -> "YYYY-MM-DD"
//	Quarterly: quarter key -> "YYYY-MM-DD", or quarter key -> month name ->
//	           day-of-month (legacy form; expands into refYear and refYear+1
//	           so a rolling schedule spans the year boundary)
//
// Empty and unparseable values contribute nothing, an unsupported frequency
// yields an empty slice. The result is sorted ascending and deduplicated by
// calendar day. Never errors.
func ExpandDates(periods map[string]interface{}, frequency string, refYear int) []time.Time {
	seen := make(map[string]time.Time)

	add := func(d time.Time) {
		key := d.Format(DateLayout)
		if _, ok := seen[key]; !ok {
			seen[key] = d
		}
	}

	switch frequency {
	case FrequencyWeekly:
		for _, monthValue := range periods {
			weeks, ok := monthValue.(map[string]interface{})
			if !ok {
				continue
			}
			for _, weekValue := range weeks {
				if d, ok := parseDay(weekValue); ok {
					add(d)
				}
			}
		}
	case FrequencyMonthly:
		for _, monthValue := range periods {
			if d, ok := parseDay(monthValue); ok {
				add(d)
			}
		}
	case FrequencyQuarterly:
		for _, quarterValue := range periods {
			if d, ok := parseDay(quarterValue); ok {
				add(d)
				continue
			}
			// Legacy quarter shape: month name -> bare day of month.
			// Expands into this year and the next.
			months, ok := quarterValue.(map[string]interface{})
			if !ok {
				continue
			}
			for monthName, dayValue := range months {
				month, ok := monthsByName[strings.TrimSpace(monthName)]
				if !ok {
					continue
				}
				day, ok := parseDayOfMonth(dayValue)
				if !ok {
					continue
				}
				for _, year := range []int{refYear, refYear + 1} {
					d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
					// time.Date normalizes overflow (Feb 30 -> Mar 2);
					// out-of-range days are dropped instead.
					if d.Month() == month && d.Day() == day {
						add(d)
					}
				}
			}
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// NextUpcoming returns the first date on or after today, comparing calendar
// days only. When every date has passed it returns the last one so the
// caller always has a most-relevant date to show. ok is false only for an
// empty slice.
func NextUpcoming(dates []time.Time, today time.Time) (next time.Time, ok bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	day := TruncateDay(today)
	for _, d := range dates {
		if !TruncateDay(d).Before(day) {
			return d, true
		}
	}
	return dates[len(dates)-1], true
}

// TruncateDay strips the time of day, leaving the calendar date at UTC
// midnight so dates from different sources compare by day.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDay accepts a period value holding a full date string.
func parseDay(value interface{}) (time.Time, bool) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// parseDayOfMonth accepts the legacy quarterly day value, which arrives as a
// digit string or a JSON number depending on how the schedule was saved.
func parseDayOfMonth(value interface{}) (int, bool) {
	var day int
	switch v := value.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		day = n
	case float64:
		day = int(v)
	case int:
		day = v
	default:
		return 0, false
	}
	if day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}
