// Package astro computes where the Moon sits in an observer's sky.
//
// A Sample fixes an instant, an observer location, and the Moon's
// equatorial coordinates at that instant; everything else (sidereal time,
// hour angle, altitude, azimuth, parallactic angle) is derived on demand
// with no hidden state, so samples are safe to share between goroutines.
//
// The altitude/azimuth math follows the classic alt-az recipe from
// http://www.stargazing.net/kepler/altaz.html with all trig done on
// degree arguments.
package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// ErrInvalidInput marks observer inputs that are outside their valid
// ranges. Callers can test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Sample is an immutable snapshot of the Moon relative to one observer.
//
// RA is right ascension in decimal hours [0, 24); Dec is declination in
// degrees. Latitude is north-positive, Longitude east-positive.
type Sample struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
	RA        float64
	Dec       float64
}

// New validates the inputs and returns a Sample. The timestamp must be
// non-zero; coordinate and equatorial ranges are enforced up front so the
// derived angles never have to guard against nonsense.
func New(t time.Time, latitude, longitude, raHours, decDeg float64) (Sample, error) {
	switch {
	case t.IsZero():
		return Sample{}, fmt.Errorf("%w: zero timestamp", ErrInvalidInput)
	case latitude < -90 || latitude > 90:
		return Sample{}, fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidInput, latitude)
	case longitude < -180 || longitude > 180:
		return Sample{}, fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidInput, longitude)
	case raHours < 0 || raHours >= 24:
		return Sample{}, fmt.Errorf("%w: right ascension %v outside [0, 24)", ErrInvalidInput, raHours)
	case decDeg < -90 || decDeg > 90:
		return Sample{}, fmt.Errorf("%w: declination %v outside [-90, 90]", ErrInvalidInput, decDeg)
	}
	return Sample{Time: t, Latitude: latitude, Longitude: longitude, RA: raHours, Dec: decDeg}, nil
}

// LocalSiderealTime returns the observer's local sidereal time in degrees.
//
// The hour-of-day term of the source formula wants the UT wall clock, so
// the timestamp is evaluated in UTC regardless of the zone it carries.
func (s Sample) LocalSiderealTime() float64 {
	utc := s.Time.UTC()
	hours := float64(utc.Hour()) + float64(utc.Minute())/60.0
	lst := 100.46 + 0.985647*DaysSinceJ2000(utc) + s.Longitude + 15*hours
	return Normalize360(lst)
}

// HourAngle returns the Moon's local hour angle in degrees [0, 360).
func (s Sample) HourAngle() float64 {
	return Normalize360(s.LocalSiderealTime() - s.RA*15.0)
}

// Altitude returns the angle of the Moon's center above the horizon in
// degrees; negative when the Moon is below the horizon.
func (s Sample) Altitude() float64 {
	sinAlt := SinD(s.Dec)*SinD(s.Latitude) + CosD(s.Dec)*CosD(s.Latitude)*CosD(s.HourAngle())
	return Rad2Deg(math.Asin(clamp1(sinAlt)))
}

// Azimuth returns the Moon's true compass bearing in degrees [0, 360),
// 0 = north, 90 = east.
//
// At altitude ±90 the bearing is geometrically undefined; the division
// degenerates and a finite value (0) is returned rather than an error so
// layout code never sees a NaN.
func (s Sample) Azimuth() float64 {
	alt := s.Altitude()
	denom := CosD(alt) * CosD(s.Latitude)
	if denom == 0 {
		return 0
	}
	cosAz := (SinD(s.Dec) - SinD(alt)*SinD(s.Latitude)) / denom
	az := Rad2Deg(math.Acos(clamp1(cosAz)))
	if SinD(s.HourAngle()) > 0 {
		az = 360 - az
	}
	return Normalize360(az)
}

// ParallacticAngle returns the angle in degrees, clockwise from vertical
// to celestial north. Renderers use it to de-rotate the Moon's
// illuminated limb for the observer; none of the layout math needs it.
func (s Sample) ParallacticAngle() float64 {
	ha := s.HourAngle()
	return Rad2Deg(math.Atan2(
		SinD(ha),
		TanD(s.Latitude)*CosD(s.Dec)-SinD(s.Dec)*CosD(ha)))
}

// DaysSinceJ2000 returns fractional days between t and the J2000.0 epoch,
// negative for instants before it.
func DaysSinceJ2000(t time.Time) float64 {
	return t.Sub(j2000).Hours() / 24.0
}

// RadiansToHours converts an angle in radians to decimal hours of right
// ascension.
func RadiansToHours(r float64) float64 {
	return Rad2Deg(r) / 15.0
}

func Deg2Rad(d float64) float64 { return d * math.Pi / 180.0 }

func Rad2Deg(r float64) float64 { return r * 180.0 / math.Pi }

// SinD is math.Sin on a value in degrees.
func SinD(deg float64) float64 { return math.Sin(Deg2Rad(deg)) }

// CosD is math.Cos on a value in degrees.
func CosD(deg float64) float64 { return math.Cos(Deg2Rad(deg)) }

// TanD is math.Tan on a value in degrees.
func TanD(deg float64) float64 { return math.Tan(Deg2Rad(deg)) }

// Normalize360 wraps an angle into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// clamp1 guards acos/asin arguments against floating-point overshoot.
func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
