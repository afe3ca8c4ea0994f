// Package calendar computes the date windows shown by the activity heatmap and the
// progress charts. Nothing here reads the clock: "today" is always passed in.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownScope  = errors.New("unknown calendar scope")
	ErrUnknownOffset = errors.New("unknown calendar offset")
)

type Scope int

const (
	Year Scope = iota
	Month
	Week
)

func (s Scope) String() string {
	switch s {
	case Year:
		return "year"
	case Month:
		return "month"
	case Week:
		return "week"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "year":
		return Year, nil
	case "month":
		return Month, nil
	case "week":
		return Week, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

// Offset is how many scope periods back from today a window is anchored.
type Offset int

const (
	Current Offset = iota
	Previous
	BeforePrevious
)

func (o Offset) String() string {
	switch o {
	case Current:
		return "current"
	case Previous:
		return "previous"
	case BeforePrevious:
		return "before_previous"
	default:
		return fmt.Sprintf("Offset(%d)", int(o))
	}
}

func ParseOffset(s string) (Offset, error) {
	switch strings.ToLower(s) {
	case "current", "0":
		return Current, nil
	case "previous", "1":
		return Previous, nil
	case "before_previous", "beforeprevious", "2":
		return BeforePrevious, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOffset, s)
	}
}

// Window is an inclusive [Start, End] date range.
type Window struct {
	Scope  Scope     `json:"-"`
	Offset Offset    `json:"-"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func WindowFor(today time.Time, scope Scope, offset Offset) Window {
	return Window{
		Scope:  scope,
		Offset: offset,
		Start:  StartDate(today, scope, offset),
		End:    EndDate(today, scope, offset),
	}
}

// Weeks returns how many Monday-aligned weeks the window touches.
func (w Window) Weeks() int {
	return StartedWeeksInPeriod(w.Start, w.End)
}

// Contains reports whether the day of t is within the window.
func (w Window) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// StartDate returns the first day of the window.
// Year and month windows are anchored to the 1st before offsetting, so no invalid
// day-of-month can come out of the arithmetic.
func StartDate(today time.Time, scope Scope, offset Offset) time.Time {
	today = dateOf(today)
	n := int(offset)
	switch scope {
	case Year:
		return time.Date(today.Year()-n, time.January, 1, 0, 0, 0, 0, time.UTC)
	case Month:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.AddDate(0, -n, 0)
	case Week:
		return MondayOfWeek(today).AddDate(0, 0, -7*n)
	default:
		return today
	}
}

// EndDate returns the last day of the window.
func EndDate(today time.Time, scope Scope, offset Offset) time.Time {
	start := StartDate(today, scope, offset)
	switch scope {
	case Year:
		return time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	case Month:
		// first of the next month minus a day
		return start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	case Week:
		return start.AddDate(0, 0, 6)
	default:
		return start
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
