package nasa

import (
	"context"
	"fmt"
	"io"
)

// frameDir is the square render used for the clock face. Frames are
// numbered from 1, one per hour of the dataset's year.
const frameDir = "frames/730x730_1x1_30p/plain"

type ImageService interface {
	// Frame streams the moon render for the given frame number. The
	// caller owns the returned reader.
	Frame(ctx context.Context, year, frame int) (io.ReadCloser, error)
}

type imageService struct {
	client *Client
}

func (s *imageService) Frame(ctx context.Context, year, frame int) (io.ReadCloser, error) {
	path, err := framePath(year, frame)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching frame %d for %d: %w", frame, year, err)
	}
	return resp.Body, nil
}

func framePath(year, frame int) (string, error) {
	id, ok := datasets[year]
	if !ok {
		return "", &ErrUnknownYear{Year: year}
	}
	if frame < 1 {
		return "", fmt.Errorf("frame numbers start at 1, got %d", frame)
	}
	return fmt.Sprintf("%s/%s/moon.%04d.jpg", datasetDir(id), frameDir, frame), nil
}
