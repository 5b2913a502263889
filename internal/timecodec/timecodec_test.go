package timecodec

import "testing"

func TestClockSeconds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "full clock", input: "09:00:00", want: 32400},
		{name: "with seconds", input: "17:30:45", want: 63045},
		{name: "short form", input: "08:15", want: 29700},
		{name: "midnight", input: "00:00:00", want: 0},
		{name: "whitespace", input: " 10:00:00 ", want: 36000},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not a time", wantErr: true},
		{name: "negative component", input: "10:-5:00", wantErr: true},
		{name: "too many parts", input: "1:2:3:4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockSeconds(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		name   string
		login  string
		logout string
		want   int
	}{
		{name: "normal shift", login: "09:00:00", logout: "17:30:00", want: 30600},
		{name: "inverted session stays negative", login: "17:00:00", logout: "09:00:00", want: -28800},
		{name: "missing login", login: "", logout: "17:00:00", want: 0},
		{name: "missing logout", login: "09:00:00", logout: "", want: 0},
		{name: "both missing", login: "", logout: "", want: 0},
		{name: "unparseable login", login: "abc", logout: "17:00:00", want: 0},
		{name: "unparseable logout", login: "09:00:00", logout: "abc", want: 0},
		{name: "zero-length session", login: "12:00:00", logout: "12:00:00", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseClockDuration(tt.login, tt.logout); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseMinutesField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "whole minutes", input: "45", want: 2700},
		{name: "thirty", input: "30", want: 1800},
		{name: "decimal rounds", input: "1.5", want: 120},
		{name: "decimal rounds down", input: "1.4", want: 60},
		{name: "empty defaults to zero", input: "", want: 0},
		{name: "non-numeric defaults to zero", input: "abc", want: 0},
		{name: "whitespace only", input: "   ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMinutesField(tt.input); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMinutesFieldDefectSignal(t *testing.T) {
	if _, ok := MinutesField("abc"); ok {
		t.Error("expected non-numeric value to be flagged")
	}
	if _, ok := MinutesField(""); !ok {
		t.Error("empty value is absent, not a defect")
	}
	if _, ok := MinutesField("30"); !ok {
		t.Error("numeric value should not be flagged")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{30600, "8h 30m"},
		{36000, "10h 0m"},
		{-30600, "-8h 30m"},
		{0, "0h 0m"},
		{59, "0h 0m"},
		{3661, "1h 1m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", tt.seconds, tt.want, got)
		}
	}
}

func TestFormatDurationRoundTrip(t *testing.T) {
	got := FormatDuration(ParseClockDuration("09:00:00", "17:30:00"))
	if got != "8h 30m" {
		t.Errorf("expected 8h 30m, got %q", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{32400, "09:00:00"},
		{63045, "17:30:45"},
		{0, "00:00:00"},
		{-3600, "-01:00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d): expected %q, got %q", tt.seconds, tt.want, got)
		}
	}
}
