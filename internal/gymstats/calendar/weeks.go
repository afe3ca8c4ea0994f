package calendar

import "time"

func MondayOfWeek(date time.Time) time.Time {
	d := dateOf(date)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func SundayOfWeek(date time.Time) time.Time {
	d := dateOf(date)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// DatesOfWeek returns the Monday to Sunday days of the week containing date.
func DatesOfWeek(date time.Time) [7]time.Time {
	var week [7]time.Time
	monday := MondayOfWeek(date)
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// StartedWeeksInPeriod counts the Monday-aligned weeks overlapping [start, end].
// It sizes the heatmap grid, one column per week.
func StartedWeeksInPeriod(start, end time.Time) int {
	start, end = dateOf(start), dateOf(end)
	if start.After(end) {
		return 0
	}
	first := MondayOfWeek(start)
	last := SundayOfWeek(end)
	days := int(last.Sub(first).Hours() / 24)
	return (days + 1) / 7
}
