package ephem

import (
	"math"
	"testing"
	"time"
)

func TestFindEvent(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, time.January, 20, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	// Sinusoid with a 24h period crossing zero upward 6h in and
	// downward 18h in.
	wave := func(at time.Time) float64 {
		return math.Sin(2 * math.Pi * (at.Sub(start).Hours() - 6) / 24)
	}

	tests := []struct {
		name string
		dir  direction
		want time.Time
	}{
		{name: "upward crossing", dir: crossingUp, want: start.Add(6 * time.Hour)},
		{name: "downward crossing", dir: crossingDown, want: start.Add(18 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := findEvent(wave, start, end, tt.dir)
			if !ok {
				t.Fatal("findEvent found no crossing")
			}
			if diff := got.Sub(tt.want); diff < -time.Minute || diff > time.Minute {
				t.Errorf("crossing at %v, want %v +/- 1m", got, tt.want)
			}
		})
	}
}

func TestFindEventNoCrossing(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, time.January, 20, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	always := func(time.Time) float64 { return 5 }
	if _, ok := findEvent(always, start, end, crossingUp); ok {
		t.Error("found an upward crossing in a constant-positive function")
	}
	if _, ok := findEvent(always, start, end, crossingDown); ok {
		t.Error("found a downward crossing in a constant-positive function")
	}
}

func TestPositionRanges(t *testing.T) {
	t.Parallel()

	var p Provider
	at := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		eq, err := p.Position(at)
		if err != nil {
			t.Fatalf("Position(%v): %v", at, err)
		}
		if eq.RA < 0 || eq.RA >= 2*math.Pi {
			t.Fatalf("RA out of range at %v: %v", at, eq.RA)
		}
		// Ecliptic latitude plus obliquity bounds declination.
		if maxDec := 29.5 * math.Pi / 180; math.Abs(eq.Dec) > maxDec {
			t.Fatalf("Dec out of range at %v: %v", at, eq.Dec)
		}
		at = at.Add(24 * time.Hour)
	}
}

func TestDistanceRange(t *testing.T) {
	t.Parallel()

	at := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		d := moonPosition(at).Distance
		if d < 350000 || d > 410000 {
			t.Fatalf("distance out of range at %v: %v km", at, d)
		}
		at = at.Add(12 * time.Hour)
	}
}

func TestRiseSetSitOnHorizon(t *testing.T) {
	t.Parallel()

	var p Provider
	lat, lon := 51.5, -0.13
	date := time.Date(2023, time.January, 20, 0, 0, 0, 0, time.UTC)

	rise, ok, err := p.Rise(lat, lon, date)
	if err != nil || !ok {
		t.Fatalf("Rise = %v, %v, %v", rise, ok, err)
	}
	set, ok, err := p.Set(lat, lon, date)
	if err != nil || !ok {
		t.Fatalf("Set = %v, %v, %v", set, ok, err)
	}

	start, end := utcDayWindow(date)
	for _, at := range []time.Time{rise, set} {
		if at.Before(start) || !at.Before(end) {
			t.Errorf("event %v outside the search day [%v, %v)", at, start, end)
		}
		if alt := altitudeFn(lat, lon)(at); math.Abs(alt) > 0.1 {
			t.Errorf("altitude above horizon at event %v = %v deg, want ~0", at, alt)
		}
	}
}

func TestIlluminationPhases(t *testing.T) {
	t.Parallel()

	var p Provider

	// Full moon 2023-01-06 23:08 UTC, new moon 2023-01-21 20:53 UTC.
	full := p.Illumination(time.Date(2023, time.January, 6, 23, 8, 0, 0, time.UTC))
	nw := p.Illumination(time.Date(2023, time.January, 21, 20, 53, 0, 0, time.UTC))

	if full < 95 || full > 100 {
		t.Errorf("Illumination(full moon) = %v, want >= 95", full)
	}
	if nw < 0 || nw > 5 {
		t.Errorf("Illumination(new moon) = %v, want <= 5", nw)
	}

	quarter := p.Illumination(time.Date(2023, time.January, 14, 0, 0, 0, 0, time.UTC))
	if quarter <= nw || quarter >= full {
		t.Errorf("Illumination(last quarter) = %v, want between %v and %v", quarter, nw, full)
	}
}
