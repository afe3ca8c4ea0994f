package milestones

import "math"

// WeightMilestones spreads steps integer ticks between start and end, both included.
// Spacing uses floor division, so the rounding error lands on the low side; chart
// labels depend on these exact values.
func WeightMilestones(start, end, steps uint32) []uint32 {
	if steps == 0 || end < start {
		return []uint32{}
	}
	if steps == 1 {
		return []uint32{start}
	}

	valueRange := end - start
	if steps >= valueRange {
		all := make([]uint32, 0, valueRange+1)
		for v := uint64(start); v <= uint64(end); v++ {
			all = append(all, uint32(v))
		}
		return all
	}

	milestones := make([]uint32, 0, steps)
	for step := uint64(0); step < uint64(steps); step++ {
		v := uint64(start) + uint64(valueRange)*step/uint64(steps-1)
		milestones = append(milestones, uint32(v))
	}
	return milestones
}

// Count returns how many values WeightMilestones would produce for the same input,
// without allocating them.
func Count(start, end, steps uint32) uint64 {
	switch {
	case steps == 0 || end < start:
		return 0
	case steps == 1:
		return 1
	case steps >= end-start:
		return uint64(end-start) + 1
	default:
		return uint64(steps)
	}
}

// ForRange builds milestones for a kilogram range as seen on a chart axis:
// the minimum is floored and the maximum ceiled to whole kilos.
func ForRange(minKilos, maxKilos float64, steps uint32) []uint32 {
	if minKilos < 0 {
		minKilos = 0
	}
	if maxKilos < minKilos {
		return []uint32{}
	}
	lo := math.Floor(minKilos)
	hi := math.Ceil(maxKilos)
	if hi > math.MaxUint32 {
		hi = math.MaxUint32
	}
	return WeightMilestones(uint32(lo), uint32(hi), steps)
}
