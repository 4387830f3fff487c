package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianoflondon/clock-dashboard/internal/common"
)

const (
	unknownTemp = "?"
	unknownDesc = "Unknown"
)

// Forecast offsets shown next to the current temperature.
const (
	Plus2 = 2 * time.Hour
	Plus4 = 4 * time.Hour
)

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// report mirrors the parts of the wttr.in j1 payload the dashboard reads.
type report struct {
	CurrentCondition []struct {
		TempC       flexString `json:"temp_C"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
	Weather []struct {
		Date   string `json:"date"`
		Hourly []struct {
			Time  flexString `json:"time"`
			TempC flexString `json:"tempC"`
		} `json:"hourly"`
	} `json:"weather"`
}

// sample is one hourly forecast point.
type sample struct {
	at    time.Time
	tempC string
}

// ParseReport decodes a j1 payload. Hourly samples are read in loc, and the
// +2h/+4h temperatures are the samples nearest to now plus each offset.
func ParseReport(data []byte, now time.Time, loc *time.Location) (Reading, error) {
	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Reading{}, fmt.Errorf("failed to decode weather report: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	r := Reading{NowTempC: unknownTemp, NowDesc: unknownDesc}
	if len(rep.CurrentCondition) > 0 {
		cur := rep.CurrentCondition[0]
		if t := strings.TrimSpace(string(cur.TempC)); t != "" {
			r.NowTempC = t
		}
		for _, d := range cur.WeatherDesc {
			if v := strings.TrimSpace(common.StripNonASCII(d.Value)); v != "" {
				r.NowDesc = v
				break
			}
		}
	}

	samples := collectSamples(rep, loc)
	if t, ok := nearest(samples, now.Add(Plus2)); ok {
		r.Plus2TempC = &t
	}
	if t, ok := nearest(samples, now.Add(Plus4)); ok {
		r.Plus4TempC = &t
	}
	return r, nil
}

// collectSamples flattens every day's hourly entries in payload order.
// Time codes are HMM/HHMM: 0, 300, ..., 2300.
func collectSamples(rep report, loc *time.Location) []sample {
	var out []sample
	for _, day := range rep.Weather {
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(day.Date), loc)
		if err != nil {
			continue
		}
		for _, h := range day.Hourly {
			code, err := strconv.Atoi(strings.TrimSpace(string(h.Time)))
			if err != nil || code < 0 {
				continue
			}
			temp := strings.TrimSpace(string(h.TempC))
			if temp == "" {
				continue
			}
			at := time.Date(date.Year(), date.Month(), date.Day(), code/100, code%100, 0, 0, loc)
			out = append(out, sample{at: at, tempC: temp})
		}
	}
	return out
}

// nearest returns the sample closest to target; on a tie the earlier one in
// payload order wins.
func nearest(samples []sample, target time.Time) (string, bool) {
	best := -1
	var bestDiff time.Duration
	for i, s := range samples {
		diff := s.at.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best < 0 {
		return "", false
	}
	return samples[best].tempC, true
}
