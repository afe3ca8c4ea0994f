package training

import (
	"fmt"
	"math"
)

// DefaultUserWeight is used to resolve bodyweight sets when no weight report exists yet.
const DefaultUserWeight = 0.0

type WeightKind int

const (
	KindKilos WeightKind = iota
	KindBodyweight
	KindBodyweightPlus
)

func (k WeightKind) String() string {
	switch k {
	case KindKilos:
		return "kilos"
	case KindBodyweight:
		return "bodyweight"
	case KindBodyweightPlus:
		return "bodyweight_plus"
	default:
		return fmt.Sprintf("WeightKind(%d)", int(k))
	}
}

// Weight is a kilogram amount, always kept at two decimals.
// Bodyweight kinds stay abstract until resolved against the user's weight.
type Weight struct {
	Kind  WeightKind `json:"kind"`
	Added float64    `json:"added"`
}

// RoundKilos normalizes a kilogram amount to two decimal places.
func RoundKilos(kg float64) float64 {
	return math.Round(kg*100) / 100
}

// Kilos is an absolute amount; negative input is clamped to 0.
func Kilos(kg float64) Weight {
	return Weight{Kind: KindKilos, Added: nonNegativeKilos(kg)}
}

func Bodyweight() Weight {
	return Weight{Kind: KindBodyweight}
}

// BodyweightPlus is the user's weight plus kg added; negative input is clamped to 0.
func BodyweightPlus(kg float64) Weight {
	return Weight{Kind: KindBodyweightPlus, Added: nonNegativeKilos(kg)}
}

func nonNegativeKilos(kg float64) float64 {
	if kg < 0 || math.IsNaN(kg) {
		return 0
	}
	return RoundKilos(kg)
}

// Resolve returns the concrete kilograms this weight stands for.
func (w Weight) Resolve(userWeight float64) float64 {
	switch w.Kind {
	case KindBodyweight:
		return RoundKilos(userWeight)
	case KindBodyweightPlus:
		return RoundKilos(userWeight + w.Added)
	default:
		return w.Added
	}
}

// Compare orders two weights by their resolved kilograms.
func (w Weight) Compare(other Weight, userWeight float64) int {
	a, b := w.Resolve(userWeight), other.Resolve(userWeight)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (w Weight) Equal(other Weight, userWeight float64) bool {
	return w.Compare(other, userWeight) == 0
}

func (w Weight) Less(other Weight, userWeight float64) bool {
	return w.Compare(other, userWeight) < 0
}

func (w Weight) String() string {
	switch w.Kind {
	case KindBodyweight:
		return "BW"
	case KindBodyweightPlus:
		return fmt.Sprintf("BW+%.2fkg", w.Added)
	default:
		return fmt.Sprintf("%.2fkg", w.Added)
	}
}
