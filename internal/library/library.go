// Package library is the local store of moon renders: a sqlite index of
// the hourly dial-a-moon records plus the downloaded frames on disk.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lunaclock/luna/internal/client/nasa"
	"github.com/lunaclock/luna/internal/migrations"
)

// Image is an indexed moon render. Path is empty until the frame has
// been downloaded.
type Image struct {
	Year        int
	Frame       int
	Time        time.Time
	Phase       float64
	Age         float64
	Diameter    float64
	Distance    float64
	SubearthLon float64
	SubearthLat float64
	PosAngle    float64
	Path        string
}

// Downloaded reports whether the frame exists on disk.
func (i Image) Downloaded() bool { return i.Path != "" }

type Repository struct {
	db *sql.DB
}

// Open opens (creating if needed) the library database at path and
// applies pending migrations.
func Open(ctx context.Context, path string) (*Repository, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening library db: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating library db: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// UpsertRecords indexes a year's worth of hourly records. Frame numbers
// are positional: record i is frame i+1.
func (r *Repository) UpsertRecords(ctx context.Context, year int, records []nasa.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO moon_images (year, frame, time, phase, age, diameter, distance, subearth_lon, subearth_lat, posangle)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (year, frame) DO UPDATE SET
			time = excluded.time,
			phase = excluded.phase,
			age = excluded.age,
			diameter = excluded.diameter,
			distance = excluded.distance,
			subearth_lon = excluded.subearth_lon,
			subearth_lat = excluded.subearth_lat,
			posangle = excluded.posangle
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, year, i+1, rec.Time.Time,
			rec.Phase, rec.Age, rec.Diameter, rec.Distance,
			rec.SubearthLon, rec.SubearthLat, rec.PosAngle,
		); err != nil {
			return fmt.Errorf("upserting frame %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// MarkDownloaded records where a frame landed on disk.
func (r *Repository) MarkDownloaded(ctx context.Context, year, frame int, path string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE moon_images SET path = ? WHERE year = ? AND frame = ?",
		path, year, frame,
	)
	if err != nil {
		return fmt.Errorf("marking frame downloaded: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("frame %d/%d is not indexed", year, frame)
	}
	return nil
}

const imageColumns = "year, frame, time, phase, age, diameter, distance, subearth_lon, subearth_lat, posangle, path"

// Get returns the indexed image for a frame, or nil when unknown.
func (r *Repository) Get(ctx context.Context, year, frame int) (*Image, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+imageColumns+" FROM moon_images WHERE year = ? AND frame = ?",
		year, frame,
	)
	img, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Candidates returns downloaded images whose phase and age sit within
// the given windows, ordered by phase closeness.
func (r *Repository) Candidates(ctx context.Context, phase, phaseDelta, age, ageDelta float64) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+imageColumns+` FROM moon_images
		WHERE path IS NOT NULL
		  AND phase BETWEEN ? AND ?
		  AND age BETWEEN ? AND ?
		ORDER BY ABS(phase - ?)
	`, phase-phaseDelta, phase+phaseDelta, age-ageDelta, age+ageDelta, phase)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var images []Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// Missing returns frames of a year that are indexed but not downloaded.
func (r *Repository) Missing(ctx context.Context, year int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT frame FROM moon_images WHERE year = ? AND path IS NULL ORDER BY frame",
		year,
	)
	if err != nil {
		return nil, fmt.Errorf("querying missing frames: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var frames []int
	for rows.Next() {
		var f int
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// CountIndexed returns how many frames a year has in the index.
func (r *Repository) CountIndexed(ctx context.Context, year int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM moon_images WHERE year = ?", year,
	).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanImage(s scanner) (Image, error) {
	var img Image
	var path sql.NullString
	err := s.Scan(
		&img.Year, &img.Frame, &img.Time,
		&img.Phase, &img.Age, &img.Diameter, &img.Distance,
		&img.SubearthLon, &img.SubearthLat, &img.PosAngle,
		&path,
	)
	if err != nil {
		return Image{}, err
	}
	img.Path = path.String
	return img, nil
}
