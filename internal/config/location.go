package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	go_json "github.com/goccy/go-json"
)

// ErrNotConfigured is returned by LoadLocation until a location has
// been saved through the setup server.
var ErrNotConfigured = errors.New("observer location not configured")

// Location is the observer site the clock renders for.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Name is a free-form label from the setup form, display only.
	Name string `json:"name,omitempty"`
}

func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", l.Longitude)
	}
	return nil
}

// LoadLocation reads the saved location from path.
func LoadLocation(path string) (Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Location{}, ErrNotConfigured
		}
		return Location{}, fmt.Errorf("failed to read location file: %w", err)
	}

	var loc Location
	if err := go_json.Unmarshal(data, &loc); err != nil {
		return Location{}, fmt.Errorf("failed to parse location file: %w", err)
	}
	if err := loc.Validate(); err != nil {
		return Location{}, fmt.Errorf("saved location is invalid: %w", err)
	}
	return loc, nil
}

// SaveLocation validates loc and writes it to path via a rename, so a
// render that races the setup server never sees a partial file.
func SaveLocation(path string, loc Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	data, err := go_json.MarshalIndent(loc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write location file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace location file: %w", err)
	}
	return nil
}
