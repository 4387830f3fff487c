package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Weather endpoint formats.
const (
	FormatJSON = "json"
	FormatLine = "line"
)

const wttrBaseURL = "https://wttr.in/"

var validate = validator.New()

type AppConfig struct {
	// Share of the terminal height the dashboard draws into.
	ViewportRatio float64 `validate:"gt=0,lte=1"`
	MinHeight     int     `validate:"gte=1"`

	TickInterval  time.Duration `validate:"gt=0"`
	TooSmallDelay time.Duration `validate:"gte=0"`

	ClockFont  string `validate:"required"`
	TextFont   string `validate:"required"`
	ShowLabels bool
	Header     string

	// LogFile receives log output while the screen is active ("" discards it).
	LogFile string

	WeatherLocation  string
	WeatherFormat    string `validate:"oneof=json line"`
	WeatherURL       string `validate:"required,url"`
	WeatherTimezone  string
	WeatherUserAgent string
	WeatherTimeout   time.Duration `validate:"gt=0"`
	RefreshInterval  time.Duration `validate:"gt=0"`

	// Location is resolved from WeatherTimezone; UTC when unknown.
	Location *time.Location `validate:"-"`

	// Status server; disabled when StatusAddr is empty.
	StatusAddr    string
	StatusHistory int `validate:"gte=0"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	var err error
	if cfg.ViewportRatio, err = getenvFloat("CLOCK_VIEWPORT_RATIO", 0.33); err != nil {
		return nil, err
	}
	if cfg.MinHeight, err = getenvInt("CLOCK_MIN_HEIGHT", 8); err != nil {
		return nil, err
	}
	if cfg.TickInterval, err = getenvDuration("CLOCK_TICK_INTERVAL", 200*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.TooSmallDelay, err = getenvDuration("CLOCK_TOO_SMALL_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	cfg.ClockFont = getenvDefault("CLOCK_FONT", "big")
	cfg.TextFont = getenvDefault("CLOCK_TEXT_FONT", "standard")
	if cfg.ShowLabels, err = getenvBool("CLOCK_SHOW_LABELS", true); err != nil {
		return nil, err
	}
	cfg.Header = getenvDefault("CLOCK_HEADER", "Clock dashboard q to quit")
	cfg.LogFile = os.Getenv("CLOCK_LOG_FILE")

	cfg.WeatherLocation = getenvDefault("WEATHER_LOCATION", "Ramat+Hasharon")
	cfg.WeatherFormat = strings.ToLower(getenvDefault("WEATHER_FORMAT", FormatJSON))
	cfg.WeatherURL = getenvDefault("WEATHER_URL", DefaultURL(cfg.WeatherLocation, cfg.WeatherFormat))
	cfg.WeatherTimezone = getenvDefault("WEATHER_TIMEZONE", "Asia/Jerusalem")
	cfg.WeatherUserAgent = getenvDefault("WEATHER_USER_AGENT", "curl/7.79.1")
	if cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("WEATHER_REFRESH_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	cfg.Location = loadLocation(cfg.WeatherTimezone)

	cfg.StatusAddr = os.Getenv("STATUS_ADDR")
	if cfg.StatusHistory, err = getenvInt("STATUS_HISTORY", 32); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultURL is the wttr.in endpoint for a location and format.
func DefaultURL(location, format string) string {
	if format == FormatLine {
		return wttrBaseURL + location + "?format=3"
	}
	return wttrBaseURL + location + "?format=j1"
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("INFO: unknown timezone %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
