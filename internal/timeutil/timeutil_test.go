package timeutil

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"midnight", "00:00", 0},
		{"morning", "07:30", 450},
		{"end of day", "23:59", 1439},
		{"no padding", "9:5", 545},
		{"empty", "", 0},
		{"missing colon", "0730", 0},
		{"non-numeric hours", "ab:30", 0},
		{"non-numeric minutes", "07:xx", 0},
		{"too many parts", "07:30:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeToMinutes(tt.input); got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{"zero", 0, "00:00"},
		{"morning", 450, "07:30"},
		{"last minute", 1439, "23:59"},
		{"wraps past midnight", 1440, "00:00"},
		{"wraps far forward", 3000, "02:00"},
		{"negative wraps backward", -60, "23:00"},
		{"large negative", -1441, "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesToTime(tt.minutes); got != tt.want {
				t.Errorf("MinutesToTime(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestMinutesToTimeRoundTrip(t *testing.T) {
	// TimeToMinutes(MinutesToTime(m)) == ((m % 1440)+1440) % 1440 for all m.
	for _, m := range []int{-3000, -1440, -1, 0, 1, 719, 1439, 1440, 2000, 100000} {
		want := ((m % 1440) + 1440) % 1440
		if got := TimeToMinutes(MinutesToTime(m)); got != want {
			t.Errorf("round trip of %d = %d, want %d", m, got, want)
		}
	}
}

func TestMinutesSinceWake(t *testing.T) {
	tests := []struct {
		name        string
		clock, wake string
		want        int
	}{
		{"same time", "07:00", "07:00", 0},
		{"later same day", "09:30", "07:00", 150},
		{"before wake wraps forward", "06:00", "07:00", 1380},
		{"one minute before wake", "06:59", "07:00", 1439},
		{"midnight wake", "13:00", "00:00", 780},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesSinceWake(tt.clock, tt.wake)
			if got != tt.want {
				t.Errorf("MinutesSinceWake(%q, %q) = %d, want %d", tt.clock, tt.wake, got, tt.want)
			}
			if got < 0 || got > 1439 {
				t.Errorf("MinutesSinceWake(%q, %q) = %d, outside [0,1439]", tt.clock, tt.wake, got)
			}
		})
	}
}

func TestAddMinutesInvertsMinutesSinceWake(t *testing.T) {
	// AddMinutes(w, MinutesSinceWake(t, w)) == t for valid clock times.
	wakes := []string{"00:00", "06:45", "12:00", "23:59"}
	clocks := []string{"00:00", "01:30", "06:44", "06:45", "18:00", "23:59"}
	for _, w := range wakes {
		for _, c := range clocks {
			if got := AddMinutes(w, MinutesSinceWake(c, w)); got != c {
				t.Errorf("AddMinutes(%q, MinutesSinceWake(%q, %q)) = %q, want %q", w, c, w, got, c)
			}
		}
	}
}

func TestAddMinutes(t *testing.T) {
	if got := AddMinutes("23:30", 45); got != "00:15" {
		t.Errorf("AddMinutes past midnight = %q, want 00:15", got)
	}
	if got := AddMinutes("07:00", -90); got != "05:30" {
		t.Errorf("AddMinutes negative = %q, want 05:30", got)
	}
}

func TestFormat12Hour(t *testing.T) {
	tests := []struct {
		clock       string
		withMinutes bool
		want        string
	}{
		{"00:00", true, "12:00 AM"},
		{"00:30", false, "12 AM"},
		{"09:05", true, "9:05 AM"},
		{"12:00", false, "12 PM"},
		{"13:45", true, "1:45 PM"},
		{"23:59", false, "11 PM"},
		{"garbage", true, "garbage"},
	}
	for _, tt := range tests {
		if got := Format12Hour(tt.clock, tt.withMinutes); got != tt.want {
			t.Errorf("Format12Hour(%q, %v) = %q, want %q", tt.clock, tt.withMinutes, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{30, "30min"},
		{60, "1h"},
		{90, "1h 30m"},
		{150, "2h 30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{-5, "not yet"},
		{0, "just now"},
		{45, "45m ago"},
		{200, "3h 20m ago"},
	}
	for _, tt := range tests {
		if got := FormatTimeAgo(tt.minutes); got != tt.want {
			t.Errorf("FormatTimeAgo(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
