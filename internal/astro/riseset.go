package astro

import (
	"errors"
	"fmt"
	"time"
)

// ErrGeometryUnavailable is returned when the ephemeris provider cannot
// resolve a rise or set even after the one-day retry. It always reaches
// the caller; nothing in this package swallows it.
var ErrGeometryUnavailable = errors.New("ephemeris could not resolve rise/set")

// Equatorial holds geocentric equatorial coordinates in radians, the unit
// contract of the ephemeris provider.
type Equatorial struct {
	RA  float64
	Dec float64
}

// Provider supplies the Moon's position and daily rise/set events. A
// (zero time, false, nil) result from Rise or Set means the date
// legitimately has no such event; it is not an error.
//
// Implementations may cache internally but must be safe for concurrent
// use: samples for independent renders are computed in parallel.
type Provider interface {
	Position(t time.Time) (Equatorial, error)
	Rise(latitude, longitude float64, date time.Time) (time.Time, bool, error)
	Set(latitude, longitude float64, date time.Time) (time.Time, bool, error)
}

// SampleAt builds a Sample for an instant, resolving the Moon's
// equatorial coordinates through the provider.
func SampleAt(p Provider, t time.Time, latitude, longitude float64) (Sample, error) {
	eq, err := p.Position(t)
	if err != nil {
		return Sample{}, fmt.Errorf("moon position at %v: %w", t, err)
	}
	return New(t, latitude, longitude, Normalize24(RadiansToHours(eq.RA)), Rad2Deg(eq.Dec))
}

// Normalize24 wraps decimal hours into [0, 24).
func Normalize24(h float64) float64 {
	h = h - 24*float64(int(h/24))
	if h < 0 {
		h += 24
	}
	return h
}

// NearestRiseSet returns the rise/set pair to display around the
// sample's instant: the most recent rise if the Moon is up, otherwise
// the next rise, and in either case the set that follows that rise.
//
// Each lookup retries at most one adjacent calendar day. A same-day set
// that happened just before a down Moon's next rise is deliberately not
// considered: the displayed pair is always rise-first, even when that
// makes an instant shortly after moonset show the next cycle.
func NearestRiseSet(p Provider, s Sample) (rise, set Sample, err error) {
	// All provider lookups are keyed by UTC calendar date.
	now := s.Time.UTC()

	riseT, ok, err := p.Rise(s.Latitude, s.Longitude, now)
	if err != nil {
		return Sample{}, Sample{}, fmt.Errorf("moonrise on %v: %w", now, err)
	}

	if s.Altitude() > 0 {
		// Moon is up: we want the most recent rise, possibly yesterday.
		if !ok || riseT.After(now) {
			riseT, ok, err = p.Rise(s.Latitude, s.Longitude, now.AddDate(0, 0, -1))
			if err != nil {
				return Sample{}, Sample{}, fmt.Errorf("moonrise on previous day: %w", err)
			}
		}
	} else {
		// Moon is down: we want the next rise, possibly tomorrow.
		if !ok || riseT.Before(now) {
			riseT, ok, err = p.Rise(s.Latitude, s.Longitude, now.AddDate(0, 0, 1))
			if err != nil {
				return Sample{}, Sample{}, fmt.Errorf("moonrise on next day: %w", err)
			}
		}
	}
	if !ok {
		return Sample{}, Sample{}, fmt.Errorf("%w: no moonrise near %v", ErrGeometryUnavailable, now)
	}

	// The set that follows the rise may land on the next calendar day.
	setT, ok, err := p.Set(s.Latitude, s.Longitude, riseT)
	if err != nil {
		return Sample{}, Sample{}, fmt.Errorf("moonset after %v: %w", riseT, err)
	}
	if !ok || setT.Before(riseT) {
		setT, ok, err = p.Set(s.Latitude, s.Longitude, riseT.AddDate(0, 0, 1))
		if err != nil {
			return Sample{}, Sample{}, fmt.Errorf("moonset on day after rise: %w", err)
		}
	}
	if !ok {
		return Sample{}, Sample{}, fmt.Errorf("%w: no moonset after rise %v", ErrGeometryUnavailable, riseT)
	}

	rise, err = SampleAt(p, riseT, s.Latitude, s.Longitude)
	if err != nil {
		return Sample{}, Sample{}, err
	}
	set, err = SampleAt(p, setT, s.Latitude, s.Longitude)
	if err != nil {
		return Sample{}, Sample{}, err
	}
	return rise, set, nil
}
