package tools

import "testing"

func TestExtractExpiry(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"iso", "Registry Expiry Date: 2026-03-15T04:00:00Z", "2026-03-15", true},
		{"plain", "Expiration Date: 2026-03-15", "2026-03-15", true},
		{"paid-till", "paid-till: 2026.03.15", "2026-03-15", true},
		{"abbrev-month", "expires on: 15-Mar-2026", "2026-03-15", true},
		{"no-date", "NOTICE: The expiration date displayed in this record is the date the", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractExpiry(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v, want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseExpiryDate(t *testing.T) {
	if got, ok := ParseExpiryDate(" 2026/01/02 "); !ok || got != "2026-01-02" {
		t.Errorf("unexpected result: %q %v", got, ok)
	}
	if _, ok := ParseExpiryDate("not a date"); ok {
		t.Errorf("expected parse failure")
	}
}

func TestDaysUntil(t *testing.T) {
	if _, ok := DaysUntil("garbage"); ok {
		t.Errorf("expected failure for garbage input")
	}
	if days, ok := DaysUntil("2000-01-01"); !ok || days >= 0 {
		t.Errorf("expected negative days for past date, got %d %v", days, ok)
	}
}
