package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	go_json "github.com/goccy/go-json"

	"github.com/lunaclock/luna/internal/config"
	"github.com/lunaclock/luna/internal/xslog"
)

func testServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	locPath := filepath.Join(t.TempDir(), "location.json")
	s := New(":0", locPath, xslog.NewLogger(io.Discard, xslog.LevelError))

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv, locPath
}

func TestGetLocationBeforeSetup(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/location")
	if err != nil {
		t.Fatalf("GET /location: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := go_json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error != "needs_config" {
		t.Errorf("error code = %q, want needs_config", body.Error)
	}
}

func TestSaveLocationForm(t *testing.T) {
	t.Parallel()

	srv, locPath := testServer(t)

	resp, err := http.PostForm(srv.URL+"/location", url.Values{
		"latitude":  {"51.5"},
		"longitude": {"-0.13"},
		"name":      {"London"},
	})
	if err != nil {
		t.Fatalf("POST /location: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	loc, err := config.LoadLocation(locPath)
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	if loc.Latitude != 51.5 || loc.Longitude != -0.13 || loc.Name != "London" {
		t.Errorf("saved location = %+v", loc)
	}
}

func TestSaveLocationJSON(t *testing.T) {
	t.Parallel()

	srv, locPath := testServer(t)

	resp, err := http.Post(srv.URL+"/location", "application/json",
		strings.NewReader(`{"latitude": 40.7, "longitude": -74}`))
	if err != nil {
		t.Fatalf("POST /location: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	loc, err := config.LoadLocation(locPath)
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	if loc.Latitude != 40.7 || loc.Longitude != -74 {
		t.Errorf("saved location = %+v", loc)
	}
}

func TestSaveLocationRejectsBadInput(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{
			name: "not a number",
			form: url.Values{"latitude": {"north"}, "longitude": {"0"}},
		},
		{
			name: "latitude out of range",
			form: url.Values{"latitude": {"95"}, "longitude": {"0"}},
		},
		{
			name: "missing longitude",
			form: url.Values{"latitude": {"51.5"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, err := http.PostForm(srv.URL+"/location", tt.form)
			if err != nil {
				t.Fatalf("POST /location: %v", err)
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
			}
		})
	}
}

func TestConfigQueryParamSaves(t *testing.T) {
	t.Parallel()

	srv, locPath := testServer(t)

	resp, err := http.Get(srv.URL + "/?config=35.68,139.69,Tokyo")
	if err != nil {
		t.Fatalf("GET /?config: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	loc, err := config.LoadLocation(locPath)
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	if loc.Latitude != 35.68 || loc.Longitude != 139.69 || loc.Name != "Tokyo" {
		t.Errorf("saved location = %+v", loc)
	}
}

func TestFormPrefillsSavedLocation(t *testing.T) {
	t.Parallel()

	srv, locPath := testServer(t)
	if err := config.SaveLocation(locPath, config.Location{Latitude: 51.5, Longitude: -0.13}); err != nil {
		t.Fatalf("SaveLocation: %v", err)
	}

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !strings.Contains(string(body), `value="51.5"`) {
		t.Error("form does not prefill the saved latitude")
	}
}
