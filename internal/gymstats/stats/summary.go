package stats

import (
	"time"

	"github.com/2beens/liftstats/internal/gymstats/training"
)

// Summary bundles the all-time numbers shown on the exercise stats panel.
type Summary struct {
	ExerciseID        string      `json:"exerciseId"`
	MuscleGroup       string      `json:"muscleGroup"`
	TotalLiftedWeight float64     `json:"totalLiftedWeight"`
	TotalReps         uint64      `json:"totalReps"`
	TotalSets         int         `json:"totalSets"`
	PersonalRecord    float64     `json:"personalRecord"`
	HeaviestSetDate   time.Time   `json:"heaviestSetDate"`
	HeaviestSetLifted float64     `json:"heaviestSetLifted"`
	MaxWeightPerDay   []DayWeight `json:"maxWeightPerDay"`
	DaysTrained       int         `json:"daysTrained"`
	LastTrainingDate  *time.Time  `json:"lastTrainingDate,omitempty"`
	FirstTrainingDate *time.Time  `json:"firstTrainingDate,omitempty"`
}

func Summarize(ex *training.TrackedExercise, today time.Time) Summary {
	heaviestDate, heaviestLifted := SetWithMostTotalLiftedWeight(ex, training.Date(today))
	s := Summary{
		ExerciseID:        ex.ID,
		MuscleGroup:       ex.MuscleGroup,
		TotalLiftedWeight: AllTimeLiftedWeight(ex),
		TotalReps:         AllTimeReps(ex),
		TotalSets:         AllTimeSets(ex),
		PersonalRecord:    WeightPersonalRecord(ex),
		HeaviestSetDate:   heaviestDate,
		HeaviestSetLifted: heaviestLifted,
		MaxWeightPerDay:   MaxWeightPerDay(ex),
		DaysTrained:       ex.Len(),
	}
	if n := len(s.MaxWeightPerDay); n > 0 {
		first, last := s.MaxWeightPerDay[0].Date, s.MaxWeightPerDay[n-1].Date
		s.FirstTrainingDate = &first
		s.LastTrainingDate = &last
	}
	return s
}
