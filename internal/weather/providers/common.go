package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Circuit breaker tuning shared by every source.
const (
	breakerTrips   = 3
	breakerTimeout = 2 * time.Minute
)

// HTTPClientConfig bundles HTTP client and request settings.
type HTTPClientConfig struct {
	Client    *http.Client
	UserAgent string
	Timeout   time.Duration
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// statusError marks failures caused by the HTTP status line.
type statusError struct {
	err error
}

func (e statusError) Error() string { return e.err.Error() }
func (e statusError) Unwrap() error { return e.err }

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrips
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("INFO: circuit %s: %s -> %s", name, from, to)
		},
	})
}

// doRequest performs exactly one GET through the circuit breaker and returns
// the body. Failures are reported as *weather.FetchError.
func doRequest(
	ctx context.Context,
	source string,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	url string,
) ([]byte, error) {
	if cfg.Client == nil {
		return nil, &weather.FetchError{Source: source, Kind: weather.KindTransport, Err: errNoHTTPClient}
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &weather.FetchError{Source: source, Kind: weather.KindTransport, Err: err}
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, statusError{errRateLimited}
		}
		if resp.StatusCode >= 500 {
			return nil, statusError{fmt.Errorf("%w: %d", errServerError, resp.StatusCode)}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, statusError{fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)}
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, readErr
		}
		return body, nil
	})
	if err != nil {
		return nil, classify(source, err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, &weather.FetchError{Source: source, Kind: weather.KindDecode, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	return body, nil
}

func classify(source string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &weather.FetchError{Source: source, Kind: weather.KindCircuitOpen, Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
	}
	var se statusError
	if errors.As(err, &se) {
		return &weather.FetchError{Source: source, Kind: weather.KindStatus, Err: se.err}
	}
	return &weather.FetchError{Source: source, Kind: weather.KindTransport, Err: err}
}
