package exercises

import (
	"time"

	"github.com/2beens/liftstats/internal/gymstats/training"
)

// MetadataBodyweight marks a set done with the user's own body weight; Kilos then
// holds the extra load, if any.
const MetadataBodyweight = "bodyweight"

type Exercise struct {
	ID          int               `json:"id"`
	ExerciseID  string            `json:"exerciseId"`
	MuscleGroup string            `json:"muscleGroup"`
	Kilos       float64           `json:"kilos"`
	Reps        int               `json:"reps"`
	CreatedAt   time.Time         `json:"createdAt"`
	Metadata    map[string]string `json:"metadata"`
}

func (e Exercise) IsBodyweight() bool {
	return e.Metadata[MetadataBodyweight] == "true"
}

func (e Exercise) Weight() training.Weight {
	switch {
	case !e.IsBodyweight():
		return training.Kilos(e.Kilos)
	case e.Kilos > 0:
		return training.BodyweightPlus(e.Kilos)
	default:
		return training.Bodyweight()
	}
}

// Tracked groups stored sets into a TrackedExercise, one entry per training day.
// Rows are expected in created_at order, which keeps the sets of a day in the order
// they were done. Rows with negative reps are skipped.
func Tracked(exerciseID, muscleGroup string, rows []Exercise, userWeight float64) *training.TrackedExercise {
	tracked := training.NewTrackedExercise(exerciseID, exerciseID, muscleGroup)
	for _, row := range rows {
		if row.Reps < 0 {
			continue
		}
		tracked.AddSet(row.CreatedAt, training.NewSet(row.Weight(), userWeight, uint32(row.Reps)))
	}
	return tracked
}
