package server

import (
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	go_json "github.com/goccy/go-json"

	"github.com/lunaclock/luna/internal/apperr"
	"github.com/lunaclock/luna/internal/config"
	"github.com/lunaclock/luna/internal/xhttp"
)

//go:embed form.html
var formHTML string

var formTemplate = template.Must(template.New("form").Parse(formHTML))

type formData struct {
	Configured bool
	Saved      bool
	Location   config.Location
}

// handleForm renders the setup page, prefilled with any saved location.
// A ?config=lat,lon query saves directly, for clients that can't POST.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	data := formData{}

	if q := r.URL.Query().Get("config"); q != "" {
		loc, err := parseConfigParam(q)
		if err != nil {
			apperr.WriteError(r.Context(), w, err)
			return
		}
		if err := config.SaveLocation(s.locationPath, loc); err != nil {
			apperr.WriteError(r.Context(), w, apperr.Internal(apperr.WithCause(err)))
			return
		}
		data = formData{Configured: true, Saved: true, Location: loc}
	} else if loc, err := config.LoadLocation(s.locationPath); err == nil {
		data = formData{Configured: true, Location: loc}
	}

	xhttp.SetHeaderContentTypeTextHTML(w)
	if err := formTemplate.Execute(w, data); err != nil {
		apperr.WriteError(r.Context(), w, apperr.Internal(apperr.WithCause(err)))
	}
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := config.LoadLocation(s.locationPath)
	if errors.Is(err, config.ErrNotConfigured) {
		apperr.WriteError(r.Context(), w, apperr.NeedsConfig(
			apperr.WithMessage("no observer location saved yet"),
		))
		return
	}
	if err != nil {
		apperr.WriteError(r.Context(), w, apperr.Internal(apperr.WithCause(err)))
		return
	}
	apperr.WriteOK(w, loc)
}

// handleSaveLocation accepts either a JSON body or an HTML form post.
func (s *Server) handleSaveLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := decodeLocation(r)
	if err != nil {
		apperr.WriteError(r.Context(), w, err)
		return
	}

	if err := config.SaveLocation(s.locationPath, loc); err != nil {
		apperr.WriteError(r.Context(), w, apperr.InvalidInput(
			apperr.WithMessage(err.Error()),
			apperr.WithCause(err),
		))
		return
	}
	apperr.WriteOK(w, loc)
}

func decodeLocation(r *http.Request) (config.Location, error) {
	if r.Header.Get(xhttp.ContentType) == "application/json" {
		var loc config.Location
		if err := go_json.NewDecoder(r.Body).Decode(&loc); err != nil {
			return config.Location{}, apperr.InvalidInput(
				apperr.WithMessage("malformed JSON body"),
				apperr.WithCause(err),
			)
		}
		return loc, nil
	}

	if err := r.ParseForm(); err != nil {
		return config.Location{}, apperr.InvalidInput(
			apperr.WithMessage("malformed form body"),
			apperr.WithCause(err),
		)
	}

	fields := map[string]string{}
	lat, err := strconv.ParseFloat(r.PostForm.Get("latitude"), 64)
	if err != nil {
		fields["latitude"] = "must be a number"
	}
	lon, err := strconv.ParseFloat(r.PostForm.Get("longitude"), 64)
	if err != nil {
		fields["longitude"] = "must be a number"
	}
	if len(fields) > 0 {
		return config.Location{}, apperr.InvalidInput(
			apperr.WithMessage("invalid coordinates"),
			apperr.WithFields(fields),
		)
	}

	return config.Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      r.PostForm.Get("name"),
	}, nil
}

// parseConfigParam reads the compact "lat,lon[,name]" query form.
func parseConfigParam(q string) (config.Location, error) {
	parts := strings.SplitN(q, ",", 3)
	if len(parts) < 2 {
		return config.Location{}, apperr.InvalidInput(
			apperr.WithMessage("config must be lat,lon[,name]"),
		)
	}

	lat, errLat := strconv.ParseFloat(parts[0], 64)
	lon, errLon := strconv.ParseFloat(parts[1], 64)
	if errLat != nil || errLon != nil {
		return config.Location{}, apperr.InvalidInput(
			apperr.WithMessage("config coordinates must be numbers"),
		)
	}

	loc := config.Location{Latitude: lat, Longitude: lon}
	if len(parts) == 3 {
		loc.Name = parts[2]
	}
	if err := loc.Validate(); err != nil {
		return config.Location{}, apperr.InvalidInput(apperr.WithMessage(err.Error()))
	}
	return loc, nil
}
