package model

import "testing"

func TestPreferencesWarnings(t *testing.T) {
	cases := []struct {
		name   string
		salary string
		want   int
	}{
		{"Empty", "", 0},
		{"Numeric", "85000", 0},
		{"Range", "$80k-$95k", 0},
		{"NoDigits", "competitive", 1},
		{"Whitespace", "   ", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Preferences{ExpectedSalary: tc.salary}
			if got := p.Warnings(); len(got) != tc.want {
				t.Errorf("Warnings() = %v, want %d warnings", got, tc.want)
			}
		})
	}
}
