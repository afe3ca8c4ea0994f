package stats

import (
	"time"

	"github.com/2beens/liftstats/internal/gymstats/training"
)

// DayActivity is one cell of the activity heatmap.
type DayActivity struct {
	Date   time.Time `json:"date"`
	Sets   int       `json:"sets"`
	Lifted float64   `json:"lifted"`
}

// Activity returns one cell for every calendar day in [start, end], including days
// without any sets. Empty when start is after end.
func Activity(ex *training.TrackedExercise, start, end time.Time) []DayActivity {
	start, end = training.Date(start), training.Date(end)
	if start.After(end) {
		return []DayActivity{}
	}

	var cells []DayActivity
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		cells = append(cells, DayActivity{Date: d})
	}

	ex.AscendRange(start, end, func(date time.Time, sets []training.Set) bool {
		i := int(date.Sub(start).Hours() / 24)
		cells[i].Sets = len(sets)
		for _, s := range sets {
			cells[i].Lifted += s.TotalLifted()
		}
		return true
	})

	return cells
}
