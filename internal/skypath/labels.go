package skypath

import "math"

// Angular tolerances for label collision. Single letters need less
// clearance than HH:MM time text.
const (
	LetterDelta   = 4.0
	TimeTextDelta = 8.0
)

// CanDrawLabelAt reports whether a label at azimuth az stays clear of
// every occupied azimuth by more than delta degrees. The comparison
// wraps at 0/360: an occupied azimuth near north blocks labels on both
// sides of the seam.
func CanDrawLabelAt(az, delta float64, occupied []float64) bool {
	for _, caz := range occupied {
		switch {
		case caz-delta < az && az < caz+delta:
			return false
		case caz < delta && mod360(caz-delta) < az:
			// Occupied azimuth near 0: its lower bound wraps past 360.
			return false
		case 360-caz < delta && az < mod360(caz+delta):
			// Occupied azimuth near 360: its upper bound wraps past 0.
			return false
		}
	}
	return true
}

// mod360 wraps into [0, 360) with a floor-style modulus, so negative
// inputs land on the positive side of the seam.
func mod360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
