package ephem

import (
	"math"
	"time"

	"github.com/lunaclock/luna/internal/astro"
)

// Provider implements astro.Provider with the built-in series. The zero
// value is ready to use.
type Provider struct{}

var _ astro.Provider = Provider{}

// Position returns the Moon's geocentric RA and Dec in radians.
func (Provider) Position(t time.Time) (astro.Equatorial, error) {
	eq := moonPosition(t)
	return astro.Equatorial{
		RA:  astro.Deg2Rad(eq.RA),
		Dec: astro.Deg2Rad(eq.Dec),
	}, nil
}

// Rise returns the moment within date's UTC calendar day at which the
// Moon's topocentric altitude climbs through the apparent horizon. The
// second return is false when no rise occurs that day, which happens
// roughly once a lunar month and at extreme latitudes.
func (Provider) Rise(lat, lon float64, date time.Time) (time.Time, bool, error) {
	start, end := utcDayWindow(date)
	at, ok := findEvent(altitudeFn(lat, lon), start, end, crossingUp)
	return at, ok, nil
}

// Set is the descending counterpart of Rise over the same UTC day.
func (Provider) Set(lat, lon float64, date time.Time) (time.Time, bool, error) {
	start, end := utcDayWindow(date)
	at, ok := findEvent(altitudeFn(lat, lon), start, end, crossingDown)
	return at, ok, nil
}

// Illumination returns the percent of the lunar disc that is lit at t,
// from the Sun-Moon elongation and the two distances.
func (Provider) Illumination(t time.Time) float64 {
	moon := moonPosition(t)
	sun := sunPosition(t)

	raM := astro.Deg2Rad(moon.RA)
	decM := astro.Deg2Rad(moon.Dec)
	raS := astro.Deg2Rad(sun.RA)
	decS := astro.Deg2Rad(sun.Dec)

	// Geocentric elongation.
	cosPsi := math.Sin(decS)*math.Sin(decM) +
		math.Cos(decS)*math.Cos(decM)*math.Cos(raS-raM)
	psi := math.Acos(clamp1(cosPsi))

	// Phase angle at the Moon.
	i := math.Atan2(sun.Distance*math.Sin(psi), moon.Distance-sun.Distance*math.Cos(psi))

	return (1 + math.Cos(i)) / 2 * 100
}

// altitudeFn closes over the observer and returns altitude above the
// apparent horizon in degrees, the quantity whose zero crossings are
// rise and set.
func altitudeFn(lat, lon float64) func(time.Time) float64 {
	return func(t time.Time) float64 {
		dist := moonPosition(t).Distance
		return topocentricAltitude(lat, lon, t) - horizonAltitude(dist)
	}
}

func utcDayWindow(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// sunPosition returns the Sun's geocentric RA/Dec in degrees and its
// distance in kilometres, from the low-precision mean-element formulas.
func sunPosition(t time.Time) equatorial {
	d := astro.DaysSinceJ2000(t.UTC())

	g := astro.Deg2Rad(astro.Normalize360(357.529 + 0.98560028*d))
	q := astro.Normalize360(280.459 + 0.98564736*d)
	lambda := astro.Deg2Rad(astro.Normalize360(q + 1.915*math.Sin(g) + 0.020*math.Sin(2*g)))

	eps := astro.Deg2Rad(23.439291 - 0.0000137*d)

	ra := math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(math.Sin(eps) * math.Sin(lambda))

	const auKm = 149597870.7
	distAU := 1.00014 - 0.01671*math.Cos(g) - 0.00014*math.Cos(2*g)

	return equatorial{
		RA:       astro.Rad2Deg(ra),
		Dec:      astro.Rad2Deg(dec),
		Distance: distAU * auKm,
	}
}

func clamp1(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
