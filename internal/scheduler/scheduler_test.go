package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brianoflondon/clock-dashboard/internal/config"
	"github.com/brianoflondon/clock-dashboard/internal/glyph"
	"github.com/brianoflondon/clock-dashboard/internal/screen"
	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

// echoRenderer renders text as a single line.
type echoRenderer struct{}

func (echoRenderer) Render(text, font string) (string, error) { return text, nil }

// scriptedSource replays results in order, repeating the last one.
type scriptedSource struct {
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	reading weather.Reading
	err     error
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Fetch(ctx context.Context) (weather.Reading, error) {
	i := min(s.calls, len(s.results)-1)
	s.calls++
	return s.results[i].reading, s.results[i].err
}

// fakeClock only moves when told to, or when the loop sleeps.
type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		ViewportRatio:   0.33,
		MinHeight:       8,
		TickInterval:    200 * time.Millisecond,
		TooSmallDelay:   500 * time.Millisecond,
		ClockFont:       "big",
		TextFont:        "standard",
		ShowLabels:      true,
		Header:          "q to quit",
		RefreshInterval: 10 * time.Minute,
	}
}

func newTestDashboard(mem *screen.Memory, src weather.Source) (*Dashboard, *fakeClock) {
	cfg := testConfig()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 34, 56, 0, time.UTC)}
	d := New(cfg, mem, weather.NewService(src, nil, cfg.RefreshInterval), glyph.NewBuilder(echoRenderer{}))
	d.now = clock.now
	d.sleep = clock.sleep
	return d, clock
}

var errTimeout = &weather.FetchError{Source: "scripted", Kind: weather.KindTransport, Err: errors.New("timeout")}

func TestStepDrawsFullFrame(t *testing.T) {
	mem := screen.NewMemory(24, 80)
	src := &scriptedSource{results: []scriptedResult{{reading: weather.Reading{NowTempC: "19", NowDesc: "Clear"}}}}
	d, _ := newTestDashboard(mem, src)

	if d.Step(context.Background()) {
		t.Fatal("step should not quit without a key")
	}

	want := map[int]string{
		0: " 12:34  :56   01 MAY    19C",
		1: "             Wednesday  Now: Clear",
		7: strings.Repeat(" ", 70) + "q to quit",
	}
	for y, row := range want {
		if got := mem.Row(y); got != row {
			t.Fatalf("row %d:\n got %q\nwant %q", y, got, row)
		}
	}
	if !mem.At(0, 1).Emphasis {
		t.Fatal("clock should be emphasised")
	}
	if mem.Row(8) != "" {
		t.Fatalf("nothing should be drawn below the usable region, got %q", mem.Row(8))
	}
}

func TestLastGoodReadingSurvivesFailure(t *testing.T) {
	mem := screen.NewMemory(24, 80)
	src := &scriptedSource{results: []scriptedResult{
		{reading: weather.Reading{NowTempC: "19", NowDesc: "Clear"}},
		{err: errTimeout},
	}}
	d, clock := newTestDashboard(mem, src)

	d.Step(context.Background())
	clock.t = clock.t.Add(11 * time.Minute)
	d.Step(context.Background())

	if src.calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", src.calls)
	}
	if !strings.Contains(mem.Row(0), "19C") {
		t.Fatalf("expected cached temperature after failure, got %q", mem.Row(0))
	}
}

func TestSummaryPlaceholders(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		mem := screen.NewMemory(24, 80)
		d, clock := newTestDashboard(mem, &scriptedSource{results: []scriptedResult{{err: errTimeout}}})

		d.draw(clock.now())
		if got := mem.Row(3); got != "  "+LoadingText {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		mem := screen.NewMemory(24, 80)
		d, _ := newTestDashboard(mem, &scriptedSource{results: []scriptedResult{{err: errTimeout}}})

		d.Step(context.Background())
		if got := mem.Row(3); got != "  "+UnavailableText {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("one-line summary", func(t *testing.T) {
		mem := screen.NewMemory(24, 80)
		src := &scriptedSource{results: []scriptedResult{{reading: weather.Reading{Summary: "London: +12C"}}}}
		d, _ := newTestDashboard(mem, src)

		d.Step(context.Background())
		if got := mem.Row(3); got != "  London: +12C" {
			t.Fatalf("got %q", got)
		}
		if strings.Contains(mem.Row(0), "Now:") {
			t.Fatal("summary readings should not draw temperature blocks")
		}
	})
}

func TestStepPacing(t *testing.T) {
	mem := screen.NewMemory(24, 80)
	src := &scriptedSource{results: []scriptedResult{{reading: weather.Reading{NowTempC: "19", NowDesc: "Clear"}}}}
	d, clock := newTestDashboard(mem, src)

	// The fetching frame does not sleep.
	d.Step(context.Background())
	if len(clock.sleeps) != 0 {
		t.Fatalf("expected no sleep after a fetch, got %v", clock.sleeps)
	}

	d.Step(context.Background())
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 200*time.Millisecond {
		t.Fatalf("expected one tick sleep, got %v", clock.sleeps)
	}

	mem.Resize(24, 8)
	d.Step(context.Background())
	if got := clock.sleeps[len(clock.sleeps)-1]; got != 500*time.Millisecond {
		t.Fatalf("expected too-small delay, got %v", got)
	}
	if got := mem.Row(0); got != "Terminal" {
		t.Fatalf("expected clipped too-small message, got %q", got)
	}
	if src.calls != 1 {
		t.Fatalf("expected a single fetch within the interval, got %d", src.calls)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		key  rune
		quit bool
	}{
		{key: 'q', quit: true},
		{key: 'Q', quit: true},
		{key: screen.KeyInterrupt, quit: true},
		{key: 'x', quit: false},
		{key: 0, quit: false},
	}
	for _, tt := range tests {
		mem := screen.NewMemory(24, 80)
		d, _ := newTestDashboard(mem, &scriptedSource{results: []scriptedResult{{err: errTimeout}}})
		mem.PushKey(tt.key)
		if got := d.Step(context.Background()); got != tt.quit {
			t.Fatalf("key %q: quit = %v, want %v", tt.key, got, tt.quit)
		}
	}
}

func TestRunStops(t *testing.T) {
	t.Run("quit key", func(t *testing.T) {
		mem := screen.NewMemory(24, 80)
		d, _ := newTestDashboard(mem, &scriptedSource{results: []scriptedResult{{err: errTimeout}}})
		mem.PushKey('x')
		mem.PushKey('q')
		if err := d.Run(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		mem := screen.NewMemory(24, 80)
		src := &scriptedSource{results: []scriptedResult{{err: errTimeout}}}
		d, _ := newTestDashboard(mem, src)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := d.Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if src.calls != 0 {
			t.Fatalf("expected no fetch after cancellation, got %d", src.calls)
		}
		if mem.Refreshes != 1 {
			t.Fatalf("expected only the initial frame, got %d refreshes", mem.Refreshes)
		}
	})
}
