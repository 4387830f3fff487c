package weather

import (
	"time"
)

// Reading is the structured result of one successful fetch.
// Plus2TempC and Plus4TempC stay nil when the forecast has no hourly samples.
type Reading struct {
	NowTempC   string  `json:"nowTempC,omitempty"`
	NowDesc    string  `json:"nowDesc,omitempty"`
	Plus2TempC *string `json:"plus2TempC,omitempty"`
	Plus4TempC *string `json:"plus4TempC,omitempty"`

	// Summary is set by one-line sources instead of the temperature fields.
	Summary string `json:"summary,omitempty"`
}

// HasTemperatures reports whether the reading carries current conditions.
func (r Reading) HasTemperatures() bool {
	return r.NowTempC != ""
}

// Snapshot is the state published after every fetch attempt.
type Snapshot struct {
	AttemptedAt time.Time `json:"attemptedAt"`
	OK          bool      `json:"ok"`
	Error       string    `json:"error,omitempty"`

	// LastGood is the most recent successful reading, if any.
	LastGood   *Reading   `json:"lastGood,omitempty"`
	LastGoodAt *time.Time `json:"lastGoodAt,omitempty"`
}
