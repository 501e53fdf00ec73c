package ephem

import "time"

// crossing direction for findEvent.
type direction int

const (
	crossingUp   direction = iota // value goes negative -> positive
	crossingDown                  // value goes positive -> negative
)

const (
	bracketSteps = 48
	bisectTol    = 30 * time.Second
)

// findEvent locates the first zero crossing of f in the requested
// direction within [start, end). The window is walked in bracketSteps
// slices to bracket a sign change, then bisected down to bisectTol.
// Returns false when no crossing of that direction exists in the window.
func findEvent(f func(time.Time) float64, start, end time.Time, dir direction) (time.Time, bool) {
	if !end.After(start) {
		return time.Time{}, false
	}

	step := end.Sub(start) / bracketSteps
	prevT := start
	prevV := f(start)

	for i := 1; i <= bracketSteps; i++ {
		curT := start.Add(time.Duration(i) * step)
		if curT.After(end) {
			curT = end
		}
		curV := f(curT)

		if brackets(prevV, curV, dir) {
			return bisect(f, prevT, curT, dir), true
		}
		prevT, prevV = curT, curV
	}
	return time.Time{}, false
}

func brackets(a, b float64, dir direction) bool {
	if dir == crossingUp {
		return a <= 0 && b > 0
	}
	return a >= 0 && b < 0
}

func bisect(f func(time.Time) float64, lo, hi time.Time, dir direction) time.Time {
	for hi.Sub(lo) > bisectTol {
		mid := lo.Add(hi.Sub(lo) / 2)
		if brackets(f(lo), f(mid), dir) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2).Round(time.Second)
}
