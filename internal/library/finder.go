package library

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/lunaclock/luna/internal/astro"
)

// Matching windows around the target record. When nothing matches, the
// phase window widens (doubling) a few times before giving up: a sparse
// library should still produce some moon.
const (
	phaseDelta  = 0.5
	ageDelta    = 1.0
	maxWidening = 3

	// phaseWeight balances percent-illuminated closeness against the
	// angular distance between sub-earth points when ranking.
	phaseWeight = 10.0
)

// ErrNoImage means the library holds no downloaded frame anywhere near
// the target appearance.
var ErrNoImage = errors.New("no matching moon image in library")

// FrameFor maps an instant to its dial-a-moon frame number: hours since
// Jan 1 00:00 UT of the same year, rounded to the nearest hour,
// counting from 1.
func FrameFor(t time.Time) int {
	t = t.UTC()
	if t.Minute() >= 30 {
		t = t.Add(time.Hour)
	}
	yearStart := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(yearStart).Hours()) + 1
}

type Finder struct {
	repo *Repository
}

func NewFinder(repo *Repository) *Finder {
	return &Finder{repo: repo}
}

// Target returns the indexed record describing how the Moon looks at t.
func (f *Finder) Target(ctx context.Context, t time.Time) (*Image, error) {
	img, err := f.repo.Get(ctx, t.UTC().Year(), FrameFor(t))
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrNoImage
	}
	return img, nil
}

// Best picks the downloaded frame that most resembles the target:
// phase and age within window, ranked by a blend of phase closeness and
// angular distance between sub-earth points (libration match).
func (f *Finder) Best(ctx context.Context, target *Image) (*Image, error) {
	delta := phaseDelta
	for i := 0; i <= maxWidening; i++ {
		candidates, err := f.repo.Candidates(ctx, target.Phase, delta, target.Age, ageDelta)
		if err != nil {
			return nil, err
		}
		if best := pickBest(target, candidates); best != nil {
			return best, nil
		}
		delta *= 2
	}
	return nil, ErrNoImage
}

func pickBest(target *Image, candidates []Image) *Image {
	var best *Image
	bestScore := math.Inf(1)
	for i := range candidates {
		c := &candidates[i]
		score := phaseWeight*math.Abs(c.Phase-target.Phase) + subearthDistance(target, c)
		if score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// subearthDistance is the great-circle angle in degrees between the two
// images' sub-earth points.
func subearthDistance(a, b *Image) float64 {
	cosd := astro.SinD(a.SubearthLat)*astro.SinD(b.SubearthLat) +
		astro.CosD(a.SubearthLat)*astro.CosD(b.SubearthLat)*astro.CosD(a.SubearthLon-b.SubearthLon)
	cosd = math.Max(-1, math.Min(1, cosd))
	return astro.Rad2Deg(math.Acos(cosd))
}
