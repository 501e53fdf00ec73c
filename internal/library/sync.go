package library

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/lunaclock/luna/internal/client/nasa"
	"github.com/lunaclock/luna/internal/xslog"
)

// downloadConcurrency bounds parallel frame fetches; the client's rate
// limiter spaces the requests themselves.
const downloadConcurrency = 4

type Syncer struct {
	client *nasa.Client
	repo   *Repository
	dir    string
}

// NewSyncer builds a Syncer that stores frames under dir.
func NewSyncer(client *nasa.Client, repo *Repository, dir string) *Syncer {
	return &Syncer{client: client, repo: repo, dir: dir}
}

// SyncIndex fetches the hourly table for year and upserts it.
func (s *Syncer) SyncIndex(ctx context.Context, year int) error {
	records, err := s.client.MoonInfo.Year(ctx, year)
	if err != nil {
		return fmt.Errorf("syncing index for %d: %w", year, err)
	}
	if err := s.repo.UpsertRecords(ctx, year, records); err != nil {
		return err
	}

	xslog.FromContext(ctx).InfoContext(ctx, "synced moon index",
		xslog.Count(len(records)),
	)
	return nil
}

// Download fetches the given frames of year that are not on disk yet.
func (s *Syncer) Download(ctx context.Context, year int, frames []int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)

	for _, frame := range frames {
		g.Go(func() error {
			return s.downloadFrame(ctx, year, frame)
		})
	}
	return g.Wait()
}

// EnsureFrame downloads a single frame if the index has no local copy,
// returning the image either way.
func (s *Syncer) EnsureFrame(ctx context.Context, year, frame int) (*Image, error) {
	img, err := s.repo.Get(ctx, year, frame)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("frame %d/%d is not indexed", year, frame)
	}
	if img.Downloaded() {
		return img, nil
	}

	if err := s.downloadFrame(ctx, year, frame); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, year, frame)
}

func (s *Syncer) downloadFrame(ctx context.Context, year, frame int) error {
	body, err := s.client.Images.Frame(ctx, year, frame)
	if err != nil {
		return fmt.Errorf("downloading frame %d/%d: %w", year, frame, err)
	}
	defer func() { _ = body.Close() }()

	path := filepath.Join(s.dir, fmt.Sprintf("moon_%d_%04d.jpg", year, frame))
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing frame file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing frame file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("moving frame into place: %w", err)
	}

	return s.repo.MarkDownloaded(ctx, year, frame, path)
}
