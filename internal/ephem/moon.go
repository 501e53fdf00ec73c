// Package ephem is the built-in ephemeris: geocentric lunar coordinates
// from a truncated Meeus-style series plus a bracket-and-bisect search
// for daily rise and set events. Medium precision — a minute or two on
// rise/set times — which is plenty for a clock face.
//
// Everything here is a pure function of time; the Provider carries no
// state and is safe for concurrent renders.
package ephem

import (
	"math"
	"time"

	"github.com/lunaclock/luna/internal/astro"
)

// equatorial holds geocentric RA/Dec in degrees plus the Earth-Moon
// distance in kilometres.
type equatorial struct {
	RA       float64
	Dec      float64
	Distance float64
}

// moonPosition evaluates the dominant periodic terms of the Moon's
// ecliptic longitude and latitude and rotates them to the equator.
//
// Fundamental arguments (deg, with deg/day rates):
//
//	L' mean longitude, M sun mean anomaly, M' moon mean anomaly,
//	D  mean elongation from the Sun, F argument of latitude
func moonPosition(t time.Time) equatorial {
	d := astro.DaysSinceJ2000(t.UTC())

	lp := astro.Normalize360(218.3164477 + 13.17639648*d)
	m := astro.Normalize360(357.5291092 + 0.98560028*d)
	mp := astro.Normalize360(134.9633964 + 13.06499295*d)
	el := astro.Normalize360(297.8501921 + 12.19074912*d)
	f := astro.Normalize360(93.2720950 + 13.22935024*d)

	mr := astro.Deg2Rad(m)
	mpr := astro.Deg2Rad(mp)
	elr := astro.Deg2Rad(el)
	fr := astro.Deg2Rad(f)

	// Ecliptic longitude and latitude, radians.
	lon := astro.Deg2Rad(lp) +
		astro.Deg2Rad(6.289)*math.Sin(mpr) +
		astro.Deg2Rad(1.274)*math.Sin(2*elr-mpr) +
		astro.Deg2Rad(0.658)*math.Sin(2*elr) +
		astro.Deg2Rad(0.214)*math.Sin(2*mpr) -
		astro.Deg2Rad(0.186)*math.Sin(mr) -
		astro.Deg2Rad(0.114)*math.Sin(2*fr)
	lat := astro.Deg2Rad(5.128)*math.Sin(fr) +
		astro.Deg2Rad(0.280)*math.Sin(mpr+fr) +
		astro.Deg2Rad(0.277)*math.Sin(mpr-fr) +
		astro.Deg2Rad(0.173)*math.Sin(2*elr-fr)

	// Mean obliquity of the ecliptic.
	eps := astro.Deg2Rad(23.439291 - 0.0000137*d)

	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat)*math.Sin(lon)*math.Cos(eps) - math.Sin(lat)*math.Sin(eps)
	z := math.Cos(lat)*math.Sin(lon)*math.Sin(eps) + math.Sin(lat)*math.Cos(eps)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}

	// Distance from a handful of cosine terms (km).
	dist := 385000.56 -
		20905.0*math.Cos(mpr) -
		3699.0*math.Cos(2*elr-mpr) -
		2956.0*math.Cos(2*elr) -
		570.0*math.Cos(2*mpr) -
		246.0*math.Cos(2*elr+mpr)

	return equatorial{
		RA:       astro.Rad2Deg(ra),
		Dec:      astro.Rad2Deg(math.Asin(z)),
		Distance: dist,
	}
}

// topocentricAltitude returns the Moon's altitude in degrees as seen
// from (lat, lon) at t, shifting the geocentric position by horizontal
// parallax for an observer at sea level.
func topocentricAltitude(lat, lon float64, t time.Time) float64 {
	eq := moonPosition(t)

	raRad := astro.Deg2Rad(eq.RA)
	decRad := astro.Deg2Rad(eq.Dec)
	latRad := astro.Deg2Rad(lat)

	d := astro.DaysSinceJ2000(t.UTC())
	gmst := 280.46061837 + 360.98564736629*d
	lstRad := astro.Deg2Rad(astro.Normalize360(gmst + lon))

	ha := wrapPi(lstRad - raRad)

	par := horizontalParallax(eq.Distance)

	// Meeus sea-level observer factors.
	const rho = 0.99883
	rhoSinLat := rho * math.Sin(latRad)
	rhoCosLat := rho * math.Cos(latRad)
	sinPar := math.Sin(par)

	deltaRA := math.Atan2(
		-rhoCosLat*sinPar*math.Sin(ha),
		math.Cos(decRad)-rhoCosLat*sinPar*math.Cos(ha),
	)
	decTopo := math.Atan2(
		math.Sin(decRad)-rhoSinLat*sinPar,
		math.Cos(decRad)-rhoCosLat*sinPar*math.Cos(ha),
	)
	haTopo := wrapPi(lstRad - (raRad + deltaRA))

	sinAlt := math.Sin(latRad)*math.Sin(decTopo) +
		math.Cos(latRad)*math.Cos(decTopo)*math.Cos(haTopo)
	return astro.Rad2Deg(math.Asin(sinAlt))
}

func horizontalParallax(distanceKm float64) float64 {
	const earthRadiusKm = 6378.14
	if distanceKm <= earthRadiusKm {
		return astro.Deg2Rad(1.0)
	}
	return math.Asin(earthRadiusKm / distanceKm)
}

// horizonAltitude is the apparent altitude of the Moon's center that
// counts as "on the horizon", folding refraction and the upper limb
// together, with a small distance-dependent term for angular size.
func horizonAltitude(distanceKm float64) float64 {
	const (
		meanDistKm  = 384400.0
		baseHorizon = -0.90
		distScale   = 0.6
	)
	if distanceKm <= 0 {
		return baseHorizon
	}
	frac := (distanceKm - meanDistKm) / meanDistKm
	return baseHorizon - distScale*frac
}

func wrapPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
