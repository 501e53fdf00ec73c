package nasa

import (
	"context"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

// svsTimeLayout is the timestamp format used in the moon-info tables,
// e.g. "01 Jan 2023 00:00 UT".
const svsTimeLayout = "02 Jan 2006 15:04 UT"

// datasets maps a calendar year to its SVS dial-a-moon visualization ID.
// Each year is published as a separate dataset.
var datasets = map[int]int{
	2021: 4874,
	2022: 4955,
	2023: 5048,
	2024: 5187,
	2025: 5415,
}

// ErrUnknownYear is returned for years without a published dataset.
type ErrUnknownYear struct {
	Year int
}

func (e *ErrUnknownYear) Error() string {
	return fmt.Sprintf("no dial-a-moon dataset for year %d", e.Year)
}

// Time wraps time.Time with the SVS wire format.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := go_json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(svsTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parsing svs time %q: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// Record is one hourly entry from a year's moon-info table. Angles are
// degrees, distance kilometres, diameter arcseconds.
type Record struct {
	Time        Time    `json:"time"`
	Phase       float64 `json:"phase"` // percent illuminated
	Age         float64 `json:"age"`   // days since new moon
	Diameter    float64 `json:"diameter"`
	Distance    float64 `json:"distance"`
	RA          float64 `json:"j2000_ra"`  // hours
	Dec         float64 `json:"j2000_dec"` // degrees
	SubsolarLon float64 `json:"subsolar_lon"`
	SubsolarLat float64 `json:"subsolar_lat"`
	SubearthLon float64 `json:"subearth_lon"`
	SubearthLat float64 `json:"subearth_lat"`
	PosAngle    float64 `json:"posangle"`
}

type MoonInfoService interface {
	// Year fetches the full hourly table for a calendar year.
	Year(ctx context.Context, year int) ([]Record, error)
}

type moonInfoService struct {
	client *Client
}

func (s *moonInfoService) Year(ctx context.Context, year int) ([]Record, error) {
	path, err := moonInfoPath(year)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := s.client.getJSON(ctx, path, &records); err != nil {
		return nil, fmt.Errorf("fetching moon info for %d: %w", year, err)
	}
	return records, nil
}

func moonInfoPath(year int) (string, error) {
	id, ok := datasets[year]
	if !ok {
		return "", &ErrUnknownYear{Year: year}
	}
	return fmt.Sprintf("%s/mooninfo_%d.json", datasetDir(id), year), nil
}

// datasetDir builds the archive directory for a visualization ID, which
// is sharded by thousands: ID 5048 lives under /vis/a000000/a005000/a005048.
func datasetDir(id int) string {
	return fmt.Sprintf("/vis/a000000/a%06d/a%06d", id/1000*1000, id)
}
