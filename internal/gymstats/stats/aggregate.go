package stats

import (
	"time"

	"github.com/2beens/liftstats/internal/gymstats/training"
)

// DayWeight is the heaviest set weight lifted on a given day.
type DayWeight struct {
	Date  time.Time `json:"date"`
	Kilos float64   `json:"kilos"`
}

func AllTimeLiftedWeight(ex *training.TrackedExercise) float64 {
	var total float64
	ex.Ascend(func(_ time.Time, sets []training.Set) bool {
		for _, s := range sets {
			total += s.TotalLifted()
		}
		return true
	})
	return total
}

func AllTimeReps(ex *training.TrackedExercise) uint64 {
	var total uint64
	ex.Ascend(func(_ time.Time, sets []training.Set) bool {
		for _, s := range sets {
			total += uint64(s.Reps())
		}
		return true
	})
	return total
}

func AllTimeSets(ex *training.TrackedExercise) int {
	total := 0
	ex.Ascend(func(_ time.Time, sets []training.Set) bool {
		total += len(sets)
		return true
	})
	return total
}

// WeightPersonalRecord returns the heaviest single set weight, 0 when there are no sets.
func WeightPersonalRecord(ex *training.TrackedExercise) float64 {
	var record float64
	ex.Ascend(func(_ time.Time, sets []training.Set) bool {
		for _, s := range sets {
			if s.Kilos() > record {
				record = s.Kilos()
			}
		}
		return true
	})
	return record
}

// SetWithMostTotalLiftedWeight finds the set with the biggest weight x reps and the day
// it was done on. The earliest set wins ties. Without any sets it returns (today, 0),
// and callers treat that as "no record".
func SetWithMostTotalLiftedWeight(ex *training.TrackedExercise, today time.Time) (time.Time, float64) {
	bestDate := today
	var best float64
	ex.Ascend(func(date time.Time, sets []training.Set) bool {
		for _, s := range sets {
			if lifted := s.TotalLifted(); lifted > best {
				best = lifted
				bestDate = date
			}
		}
		return true
	})
	return bestDate, best
}

// MaxWeightPerDay lists, in chronological order, the heaviest set weight of every day
// that has sets.
func MaxWeightPerDay(ex *training.TrackedExercise) []DayWeight {
	perDay := make([]DayWeight, 0, ex.Len())
	ex.Ascend(func(date time.Time, sets []training.Set) bool {
		if len(sets) == 0 {
			return true
		}
		dayMax := sets[0].Kilos()
		for _, s := range sets[1:] {
			if s.Kilos() > dayMax {
				dayMax = s.Kilos()
			}
		}
		perDay = append(perDay, DayWeight{Date: date, Kilos: dayMax})
		return true
	})
	return perDay
}
