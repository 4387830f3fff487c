package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

// WttrProvider implements weather.Source for the wttr.in j1 JSON format.
type WttrProvider struct {
	name     string
	url      string
	location *time.Location
	now      func() time.Time
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewWttrProvider builds a JSON source. Hourly forecast samples are
// interpreted in loc.
func NewWttrProvider(client *http.Client, url, userAgent string, timeout time.Duration, loc *time.Location) *WttrProvider {
	if loc == nil {
		loc = time.UTC
	}
	return &WttrProvider{
		name:     "wttr",
		url:      url,
		location: loc,
		now:      time.Now,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
			Timeout:   timeout,
		},
		circuit: newBreaker("wttr"),
	}
}

func (p *WttrProvider) Name() string {
	return p.name
}

func (p *WttrProvider) Fetch(ctx context.Context) (weather.Reading, error) {
	body, err := doRequest(ctx, p.name, p.httpCfg, p.circuit, p.url)
	if err != nil {
		return weather.Reading{}, err
	}

	r, err := weather.ParseReport(body, p.now().In(p.location), p.location)
	if err != nil {
		return weather.Reading{}, &weather.FetchError{Source: p.name, Kind: weather.KindDecode, Err: err}
	}
	return r, nil
}
