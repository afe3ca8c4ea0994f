package training

// Set is one completed set, with its weight already resolved to kilograms.
type Set struct {
	kilos float64
	reps  uint32
}

func NewSet(weight Weight, userWeight float64, reps uint32) Set {
	return Set{
		kilos: weight.Resolve(userWeight),
		reps:  reps,
	}
}

// NewKilosSet is a shortcut for a plain kilogram set.
func NewKilosSet(kg float64, reps uint32) Set {
	return NewSet(Kilos(kg), DefaultUserWeight, reps)
}

func (s Set) Kilos() float64 {
	return s.kilos
}

func (s Set) Reps() uint32 {
	return s.reps
}

// TotalLifted is weight times reps, not rounded again.
func (s Set) TotalLifted() float64 {
	return s.kilos * float64(s.reps)
}
