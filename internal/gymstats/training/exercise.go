package training

import (
	"time"

	"github.com/google/btree"
)

const btreeDegree = 8

// Date normalizes t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type day struct {
	date time.Time
	sets []Set
}

func dayLess(a, b day) bool {
	return a.date.Before(b.date)
}

// TrackedExercise holds the sets done for one exercise, grouped per day.
// Days are always iterated in ascending chronological order.
type TrackedExercise struct {
	ID          string
	Name        string
	MuscleGroup string

	days *btree.BTreeG[day]
}

func NewTrackedExercise(id, name, muscleGroup string) *TrackedExercise {
	return &TrackedExercise{
		ID:          id,
		Name:        name,
		MuscleGroup: muscleGroup,
		days:        btree.NewG[day](btreeDegree, dayLess),
	}
}

// AddSet appends a set to the given day, keeping sets already stored for it.
// A zero TrackedExercise is ready to use.
func (e *TrackedExercise) AddSet(date time.Time, set Set) {
	if e.days == nil {
		e.days = btree.NewG[day](btreeDegree, dayLess)
	}
	key := day{date: Date(date)}
	existing, ok := e.days.Get(key)
	if ok {
		key.sets = append(existing.sets, set)
	} else {
		key.sets = []Set{set}
	}
	e.days.ReplaceOrInsert(key)
}

// Ascend calls fn for each day in chronological order until fn returns false.
// The sets slice must not be modified.
func (e *TrackedExercise) Ascend(fn func(date time.Time, sets []Set) bool) {
	if e == nil || e.days == nil {
		return
	}
	e.days.Ascend(func(d day) bool {
		return fn(d.date, d.sets)
	})
}

// AscendRange is like Ascend, limited to days within [from, to].
func (e *TrackedExercise) AscendRange(from, to time.Time, fn func(date time.Time, sets []Set) bool) {
	if e == nil || e.days == nil {
		return
	}
	from, to = Date(from), Date(to)
	if to.Before(from) {
		return
	}
	e.days.AscendRange(day{date: from}, day{date: to.AddDate(0, 0, 1)}, func(d day) bool {
		return fn(d.date, d.sets)
	})
}

func (e *TrackedExercise) SetsOn(date time.Time) []Set {
	if e == nil || e.days == nil {
		return nil
	}
	d, ok := e.days.Get(day{date: Date(date)})
	if !ok {
		return nil
	}
	out := make([]Set, len(d.sets))
	copy(out, d.sets)
	return out
}

func (e *TrackedExercise) Dates() []time.Time {
	dates := make([]time.Time, 0, e.Len())
	e.Ascend(func(date time.Time, _ []Set) bool {
		dates = append(dates, date)
		return true
	})
	return dates
}

// Len returns the number of days with at least one set.
func (e *TrackedExercise) Len() int {
	if e == nil || e.days == nil {
		return 0
	}
	return e.days.Len()
}

func (e *TrackedExercise) IsEmpty() bool {
	return e.Len() == 0
}
