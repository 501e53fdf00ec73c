// Package paths centralizes where luna keeps its state on disk:
// the image library, the sqlite index, the saved observer location and
// the rendered output.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dotConfig    = ".config"
	appName      = "luna"
	dbName       = "luna.db"
	imagesName   = "images"
	locationName = "location.json"
	outputName   = "face.png"
)

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", appName, err)
	}
	return dir, nil
}

func DB() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbName), nil
}

// ImagesDir holds the downloaded moon frames, one file per frame number.
func ImagesDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, imagesName), nil
}

func EnsureImagesDir() (string, error) {
	dir, err := ImagesDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}
	return dir, nil
}

// Location is the saved observer coordinates, written by the setup
// server and read on every render.
func Location() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, locationName), nil
}

// Output is where the composed clock face lands before display.
func Output() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, outputName), nil
}
