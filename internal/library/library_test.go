package library

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lunaclock/luna/internal/client/nasa"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := Open(t.Context(), filepath.Join(t.TempDir(), "luna.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func record(hour int, phase, age float64) nasa.Record {
	return nasa.Record{
		Time:        nasa.Time{Time: time.Date(2023, time.January, 1, hour, 0, 0, 0, time.UTC)},
		Phase:       phase,
		Age:         age,
		Diameter:    1900,
		Distance:    380000,
		SubearthLon: float64(hour),
		SubearthLat: -3,
		PosAngle:    20,
	}
}

func seed(t *testing.T, repo *Repository, records []nasa.Record) {
	t.Helper()
	if err := repo.UpsertRecords(t.Context(), 2023, records); err != nil {
		t.Fatalf("UpsertRecords: %v", err)
	}
}

func TestFrameFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{
			name: "year start",
			at:   time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "rounds up from half past",
			at:   time.Date(2023, time.January, 1, 0, 30, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "rounds down before half past",
			at:   time.Date(2023, time.January, 1, 5, 29, 0, 0, time.UTC),
			want: 6,
		},
		{
			name: "next day",
			at:   time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
			want: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FrameFor(tt.at); got != tt.want {
				t.Errorf("FrameFor(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := t.Context()

	seed(t, repo, []nasa.Record{
		record(0, 78.4, 9.9),
		record(1, 78.9, 10.0),
	})

	img, err := repo.Get(ctx, 2023, 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if img == nil || img.Phase != 78.9 {
		t.Fatalf("Get(2023, 2) = %+v, want phase 78.9", img)
	}
	if img.Downloaded() {
		t.Error("fresh frame reports Downloaded")
	}

	if err := repo.MarkDownloaded(ctx, 2023, 2, "/tmp/moon_2023_0002.jpg"); err != nil {
		t.Fatalf("MarkDownloaded: %v", err)
	}

	img, err = repo.Get(ctx, 2023, 2)
	if err != nil {
		t.Fatalf("Get after mark: %v", err)
	}
	if !img.Downloaded() {
		t.Error("marked frame still reports not downloaded")
	}

	missing, err := repo.Missing(ctx, 2023)
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	if len(missing) != 1 || missing[0] != 1 {
		t.Errorf("Missing = %v, want [1]", missing)
	}

	n, err := repo.CountIndexed(ctx, 2023)
	if err != nil {
		t.Fatalf("CountIndexed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountIndexed = %d, want 2", n)
	}
}

func TestMarkDownloadedUnknownFrame(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	if err := repo.MarkDownloaded(t.Context(), 2023, 99, "/tmp/x.jpg"); err == nil {
		t.Error("MarkDownloaded on unindexed frame succeeded, want error")
	}
}

func TestCandidatesFilters(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := t.Context()

	seed(t, repo, []nasa.Record{
		record(0, 50.0, 7.0), // in window, downloaded
		record(1, 50.3, 7.5), // in window, not downloaded
		record(2, 55.0, 7.0), // phase out of window
		record(3, 50.1, 9.0), // age out of window
	})
	mustMark := func(frame int) {
		t.Helper()
		if err := repo.MarkDownloaded(ctx, 2023, frame, "/tmp/f.jpg"); err != nil {
			t.Fatalf("MarkDownloaded(%d): %v", frame, err)
		}
	}
	mustMark(1)
	mustMark(3)
	mustMark(4)

	got, err := repo.Candidates(ctx, 50.0, 0.5, 7.0, 1.0)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(got) != 1 || got[0].Frame != 1 {
		t.Errorf("Candidates = %+v, want only frame 1", got)
	}
}

func TestFinderBest(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := t.Context()

	// One record per hour, frame n covering hour n-1. Frames 1 and 2
	// share the target's phase; the one with the nearer sub-earth point
	// must win.
	seed(t, repo, []nasa.Record{
		record(0, 60.0, 8.0),  // frame 1, subearth_lon 0
		record(1, 60.0, 8.0),  // frame 2, subearth_lon 1
		record(2, 90.0, 15.0), // frames 3-5 are nowhere near the target
		record(3, 90.0, 15.0),
		record(4, 90.0, 15.0),
		record(5, 60.0, 8.0), // frame 6, the target hour
	})
	for _, frame := range []int{1, 2} {
		if err := repo.MarkDownloaded(ctx, 2023, frame, "/tmp/f.jpg"); err != nil {
			t.Fatalf("MarkDownloaded(%d): %v", frame, err)
		}
	}

	finder := NewFinder(repo)

	target, err := finder.Target(ctx, time.Date(2023, time.January, 1, 5, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Target: %v", err)
	}
	if target.Frame != 6 {
		t.Fatalf("Target frame = %d, want 6", target.Frame)
	}

	best, err := finder.Best(ctx, target)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if best.Frame != 2 {
		t.Errorf("Best frame = %d, want 2 (closer sub-earth point)", best.Frame)
	}
}

func TestFinderWidensPhaseWindow(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := t.Context()

	// The only downloaded frame sits 1.5 percent off: outside the first
	// window, inside a doubled one.
	seed(t, repo, []nasa.Record{
		record(0, 61.5, 8.0), // frame 1
		record(1, 90.0, 15.0),
		record(2, 90.0, 15.0),
		record(3, 90.0, 15.0),
		record(4, 90.0, 15.0),
		record(5, 60.0, 8.0), // frame 6, the target hour
	})
	if err := repo.MarkDownloaded(ctx, 2023, 1, "/tmp/f.jpg"); err != nil {
		t.Fatalf("MarkDownloaded: %v", err)
	}

	finder := NewFinder(repo)
	target, err := finder.Target(ctx, time.Date(2023, time.January, 1, 5, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Target: %v", err)
	}

	best, err := finder.Best(ctx, target)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if best.Frame != 1 {
		t.Errorf("Best frame = %d, want 1", best.Frame)
	}
}

func TestFinderNoImage(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)

	// Fully indexed, nothing downloaded.
	seed(t, repo, []nasa.Record{
		record(0, 60.0, 8.0),
		record(1, 60.0, 8.0),
		record(2, 60.0, 8.0),
		record(3, 60.0, 8.0),
		record(4, 60.0, 8.0),
		record(5, 60.0, 8.0),
	})

	finder := NewFinder(repo)
	target, err := finder.Target(t.Context(), time.Date(2023, time.January, 1, 5, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Target: %v", err)
	}

	if _, err := finder.Best(t.Context(), target); !errors.Is(err, ErrNoImage) {
		t.Errorf("Best with empty library = %v, want ErrNoImage", err)
	}
}
