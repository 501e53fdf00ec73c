package xhttp

import (
	"fmt"
	"net/http"

	"github.com/lunaclock/luna/internal/version"
)

type lunaTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*lunaTransport)(nil)

func (t *lunaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "luna/"+version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper that identifies the client.
func NewTransport() http.RoundTripper {
	return &lunaTransport{base: http.DefaultTransport}
}
