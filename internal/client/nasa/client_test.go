package nasa

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/time/rate"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(
		WithBaseURL(srv.URL),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	)
}

func TestMoonInfoPath(t *testing.T) {
	t.Parallel()

	got, err := moonInfoPath(2023)
	if err != nil {
		t.Fatalf("moonInfoPath(2023): %v", err)
	}
	if want := "/vis/a000000/a005000/a005048/mooninfo_2023.json"; got != want {
		t.Errorf("moonInfoPath(2023) = %q, want %q", got, want)
	}

	var unknownYear *ErrUnknownYear
	if _, err := moonInfoPath(1999); !errors.As(err, &unknownYear) {
		t.Errorf("moonInfoPath(1999) = %v, want ErrUnknownYear", err)
	}
}

func TestFramePath(t *testing.T) {
	t.Parallel()

	got, err := framePath(2023, 42)
	if err != nil {
		t.Fatalf("framePath: %v", err)
	}
	if want := "/vis/a000000/a005000/a005048/frames/730x730_1x1_30p/plain/moon.0042.jpg"; got != want {
		t.Errorf("framePath(2023, 42) = %q, want %q", got, want)
	}

	if _, err := framePath(2023, 0); err == nil {
		t.Error("framePath(2023, 0) succeeded, want error")
	}
}

func TestMoonInfoYear(t *testing.T) {
	t.Parallel()

	const body = `[
		{
			"time": "01 Jan 2023 05:00 UT",
			"phase": 78.45,
			"age": 9.98,
			"diameter": 1904.9,
			"distance": 376293.3,
			"j2000_ra": 2.2661,
			"j2000_dec": 15.6663,
			"subsolar_lon": 55.05,
			"subsolar_lat": -1.52,
			"subearth_lon": -4.85,
			"subearth_lat": -6.33,
			"posangle": 357.95
		}
	]`

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want := "/vis/a000000/a005000/a005048/mooninfo_2023.json"; r.URL.Path != want {
			t.Errorf("request path = %q, want %q", r.URL.Path, want)
		}
		_, _ = w.Write([]byte(body))
	}))

	got, err := c.MoonInfo.Year(t.Context(), 2023)
	if err != nil {
		t.Fatalf("Year: %v", err)
	}

	want := []Record{{
		Time:        Time{time.Date(2023, time.January, 1, 5, 0, 0, 0, time.UTC)},
		Phase:       78.45,
		Age:         9.98,
		Diameter:    1904.9,
		Distance:    376293.3,
		RA:          2.2661,
		Dec:         15.6663,
		SubsolarLon: 55.05,
		SubsolarLat: -1.52,
		SubearthLon: -4.85,
		SubearthLat: -6.33,
		PosAngle:    357.95,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestGetReturnsAPIError(t *testing.T) {
	t.Parallel()

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "not found"}`, http.StatusNotFound)
	}))

	_, err := c.MoonInfo.Year(t.Context(), 2023)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Year error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusNotFound)
	}
}
