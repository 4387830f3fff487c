// Package scheduler drives the dashboard's render loop.
//
// The loop is single-threaded: it owns the surface and the weather cache, and
// nothing else mutates them. Weather is fetched synchronously on the loop when
// the refresh interval has elapsed, so a slow endpoint freezes the screen for
// up to the fetch timeout (WEATHER_TIMEOUT, 5s by default). The fetch cadence
// is minutes, so this latency spike is accepted rather than hidden behind a
// background goroutine.
package scheduler

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/brianoflondon/clock-dashboard/internal/config"
	"github.com/brianoflondon/clock-dashboard/internal/glyph"
	"github.com/brianoflondon/clock-dashboard/internal/layout"
	"github.com/brianoflondon/clock-dashboard/internal/screen"
	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

// Summary placeholders shown when there is no reading to display.
const (
	LoadingText     = "Loading weather..."
	UnavailableText = "Weather: unavailable"
)

// keyPollTimeout bounds how long a frame waits for input before sleeping.
const keyPollTimeout = 10 * time.Millisecond

// Dashboard renders frames until a quit key is pressed or ctx is done.
type Dashboard struct {
	cfg     *config.AppConfig
	surface screen.Surface
	service *weather.Service
	glyphs  *glyph.Builder

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a new Dashboard.
func New(cfg *config.AppConfig, surface screen.Surface, service *weather.Service, glyphs *glyph.Builder) *Dashboard {
	return &Dashboard{
		cfg:     cfg,
		surface: surface,
		service: service,
		glyphs:  glyphs,
		now:     time.Now,
		sleep:   sleepContext,
	}
}

// Run loops until the user quits or ctx is cancelled. It never fails on
// weather or layout problems; those degrade the frame instead.
func (d *Dashboard) Run(ctx context.Context) error {
	log.Printf("INFO: dashboard started (tick %s, weather every %s)", d.cfg.TickInterval, d.cfg.RefreshInterval)

	// Show the clock while the first fetch blocks.
	d.draw(d.now())

	for {
		if ctx.Err() != nil {
			log.Println("INFO: dashboard stopped by signal")
			return nil
		}
		if d.Step(ctx) {
			log.Println("INFO: dashboard stopped by user")
			return nil
		}
	}
}

// Step renders one frame and reports whether a quit key was pressed.
func (d *Dashboard) Step(ctx context.Context) bool {
	start := d.now()
	fetched := d.service.Refresh(ctx, start)

	// Weather may have taken a while; show the time as of drawing.
	now := start
	if fetched {
		now = d.now()
	}

	vp := d.draw(now)

	if key, ok := d.surface.PollKey(keyPollTimeout); ok && isQuit(key) {
		return true
	}

	if fetched {
		return false
	}
	delay := d.cfg.TickInterval
	if vp.Degenerate() {
		delay = d.cfg.TooSmallDelay
	}
	if remaining := delay - d.now().Sub(start); remaining > 0 {
		d.sleep(ctx, remaining)
	}
	return false
}

// draw erases the surface and renders one frame against its current size.
func (d *Dashboard) draw(now time.Time) layout.Viewport {
	height, width := d.surface.Size()
	vp := layout.NewViewport(height, width, d.cfg.ViewportRatio, d.cfg.MinHeight)

	var result layout.Result
	if vp.Degenerate() {
		result = layout.Compute(vp, layout.Frame{})
	} else {
		result = layout.Compute(vp, d.frame(now))
	}

	d.surface.Erase()
	for _, p := range result.Placements {
		d.surface.Write(p.Y, p.X, p.Text, p.Emphasis)
	}
	d.surface.Refresh()
	return vp
}

// frame builds the layout input for the instant now.
func (d *Dashboard) frame(now time.Time) layout.Frame {
	f := layout.Frame{
		Clock:     d.glyphs.Build(now.Format("15:04"), d.cfg.ClockFont),
		Date:      d.glyphs.Build(strings.ToUpper(now.Format("02 Jan")), d.cfg.TextFont),
		Seconds:   now.Format(":05"),
		Weekday:   now.Weekday().String(),
		PlainTime: now.Format("15:04:05"),
		PlainDate: now.Format("Monday, 2006-01-02"),
		Header:    d.cfg.Header,
		Labels:    d.cfg.ShowLabels,
	}

	reading, ok := d.service.Current()
	switch {
	case !ok && !d.service.Attempted():
		f.Summary = LoadingText
	case !ok:
		f.Summary = UnavailableText
	case reading.HasTemperatures():
		f.Temps = d.temps(reading)
	default:
		f.Summary = reading.Summary
	}
	return f
}

func (d *Dashboard) temps(r weather.Reading) []layout.TempColumn {
	cols := []layout.TempColumn{{
		Block: d.glyphs.Build(r.NowTempC+"C", d.cfg.TextFont),
		Label: "Now: " + r.NowDesc,
	}}
	if r.Plus2TempC != nil {
		cols = append(cols, layout.TempColumn{Block: d.glyphs.Build(*r.Plus2TempC+"C", d.cfg.TextFont), Label: "+2h"})
	}
	if r.Plus4TempC != nil {
		cols = append(cols, layout.TempColumn{Block: d.glyphs.Build(*r.Plus4TempC+"C", d.cfg.TextFont), Label: "+4h"})
	}
	return cols
}

func isQuit(key rune) bool {
	return key == 'q' || key == 'Q' || key == screen.KeyInterrupt
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
