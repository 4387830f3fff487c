package providers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

var errEmptySummary = errors.New("empty summary")

// SummaryProvider implements weather.Source for one-line text endpoints
// such as wttr.in's ?format=3.
type SummaryProvider struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSummaryProvider(client *http.Client, url, userAgent string, timeout time.Duration) *SummaryProvider {
	return &SummaryProvider{
		name: "wttr-line",
		url:  url,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
			Timeout:   timeout,
		},
		circuit: newBreaker("wttr-line"),
	}
}

func (p *SummaryProvider) Name() string {
	return p.name
}

func (p *SummaryProvider) Fetch(ctx context.Context) (weather.Reading, error) {
	body, err := doRequest(ctx, p.name, p.httpCfg, p.circuit, p.url)
	if err != nil {
		return weather.Reading{}, err
	}

	text := strings.TrimSpace(strings.ToValidUTF8(string(body), ""))
	if text == "" {
		return weather.Reading{}, &weather.FetchError{Source: p.name, Kind: weather.KindEmpty, Err: errEmptySummary}
	}
	return weather.Reading{Summary: text}, nil
}
