package engine

import "testing"

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  int
		ok    bool
	}{
		{"minutes seconds", "PT4M13S", 253, true},
		{"hours minutes seconds", "PT1H2M10S", 3722, true},
		{"seconds only", "PT45S", 45, true},
		{"hours only", "PT2H", 7200, true},
		{"zero", "PT0S", 0, true},
		{"missing prefix", "4M13S", 0, false},
		{"empty", "", 0, false},
		{"garbage", "hello", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseISODuration(tt.token)
			if ok != tt.ok {
				t.Fatalf("ParseISODuration(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseISODuration(%q) = %d, want %d", tt.token, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{13, "13s"},
		{253, "4m 13s"},
		{3722, "1h 2m 10s"},
		{0, "0s"},
		{3600, "1h 0m 0s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDurationBounds(t *testing.T) {
	b := DefaultDurationBounds
	if b.Within(119) {
		t.Error("119s should be below the default minimum")
	}
	if !b.Within(120) || !b.Within(1800) {
		t.Error("bounds should be inclusive")
	}
	if b.Within(1801) {
		t.Error("1801s should be above the default maximum")
	}

	custom := BoundsFromMinutes(5, 10)
	if custom.MinSeconds != 300 || custom.MaxSeconds != 600 {
		t.Errorf("BoundsFromMinutes(5, 10) = %+v", custom)
	}
	partial := BoundsFromMinutes(0, 10)
	if partial.MinSeconds != DefaultDurationBounds.MinSeconds {
		t.Errorf("zero minutes should keep the default minimum, got %d", partial.MinSeconds)
	}
}
