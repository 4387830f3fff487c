package weather

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestParseReport(t *testing.T) {
	now := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		payload   string
		wantTemp  string
		wantDesc  string
		wantPlus2 *string
		wantPlus4 *string
	}{
		{
			name:     "current only",
			payload:  `{"current_condition":[{"temp_C":"21","weatherDesc":[{"value":"Clear"}]}],"weather":[]}`,
			wantTemp: "21",
			wantDesc: "Clear",
		},
		{
			name:     "missing current condition",
			payload:  `{"current_condition":[],"weather":[]}`,
			wantTemp: "?",
			wantDesc: "Unknown",
		},
		{
			name:     "numeric temperature and blank first description",
			payload:  `{"current_condition":[{"temp_C":7,"weatherDesc":[{"value":"  "},{"value":"Light rain"}]}]}`,
			wantTemp: "7",
			wantDesc: "Light rain",
		},
		{
			name:     "non-ascii description is stripped",
			payload:  `{"current_condition":[{"temp_C":"3","weatherDesc":[{"value":"Sunny ☀"}]}]}`,
			wantTemp: "3",
			wantDesc: "Sunny",
		},
		{
			name: "forecast crosses midnight",
			payload: `{"current_condition":[{"temp_C":"18","weatherDesc":[{"value":"Clear"}]}],"weather":[
				{"date":"2024-05-01","hourly":[{"time":"2100","tempC":"17"}]},
				{"date":"2024-05-02","hourly":[{"time":"0","tempC":"15"},{"time":"300","tempC":"13"}]}
			]}`,
			wantTemp:  "18",
			wantDesc:  "Clear",
			wantPlus2: strPtr("15"),
			wantPlus4: strPtr("13"),
		},
		{
			name: "entries without temperature are ignored",
			payload: `{"current_condition":[{"temp_C":"18","weatherDesc":[{"value":"Clear"}]}],"weather":[
				{"date":"2024-05-02","hourly":[{"time":"0","tempC":""},{"time":"300","tempC":"13"}]}
			]}`,
			wantTemp:  "18",
			wantDesc:  "Clear",
			wantPlus2: strPtr("13"),
			wantPlus4: strPtr("13"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseReport([]byte(tt.payload), now, time.UTC)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.NowTempC != tt.wantTemp || r.NowDesc != tt.wantDesc {
				t.Fatalf("got %q/%q, want %q/%q", r.NowTempC, r.NowDesc, tt.wantTemp, tt.wantDesc)
			}
			checkPtr(t, "plus2", r.Plus2TempC, tt.wantPlus2)
			checkPtr(t, "plus4", r.Plus4TempC, tt.wantPlus4)
		})
	}
}

func checkPtr(t *testing.T, name string, got, want *string) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Fatalf("%s: got %v, want %v", name, got, want)
	case *got != *want:
		t.Fatalf("%s: got %q, want %q", name, *got, *want)
	}
}

func TestParseReportInvalid(t *testing.T) {
	if _, err := ParseReport([]byte("not json"), time.Now(), time.UTC); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNearestTieKeepsFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	samples := []sample{
		{at: base.Add(-time.Hour), tempC: "10"},
		{at: base.Add(time.Hour), tempC: "20"},
	}
	got, ok := nearest(samples, base)
	if !ok || got != "10" {
		t.Fatalf("expected first sample on tie, got %q", got)
	}

	if _, ok := nearest(nil, base); ok {
		t.Fatal("expected no sample")
	}
}

func TestParseReportUsesLocation(t *testing.T) {
	loc := time.FixedZone("IDT", 3*60*60)
	payload := `{"current_condition":[{"temp_C":"20","weatherDesc":[{"value":"Clear"}]}],"weather":[
		{"date":"2024-05-01","hourly":[{"time":"900","tempC":"19"},{"time":"1200","tempC":"25"}]}
	]}`
	// 07:00 local; +2h is 09:00 local.
	now := time.Date(2024, 5, 1, 4, 0, 0, 0, time.UTC)
	r, err := ParseReport([]byte(payload), now, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkPtr(t, "plus2", r.Plus2TempC, strPtr("19"))
	checkPtr(t, "plus4", r.Plus4TempC, strPtr("25"))
}
