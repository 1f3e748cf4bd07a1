package scheduling

import "testing"

func TestRequiredGap(t *testing.T) {
	cases := []struct {
		name   string
		travel float64
		grace  float64
		want   int
	}{
		{"whole minutes", 40, 5, 45},
		{"zero travel", 0, 5, 5},
		{"zero both", 0, 0, 0},
		{"fractional travel rounds up", 10.2, 5, 16},
		{"fractional grace rounds up", 10, 4.5, 15},
		{"fractional sum rounds once", 1.5, 1.4, 3},
		{"negative inputs clamp to zero", -3, 5, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RequiredGap(tc.travel, tc.grace); got != tc.want {
				t.Fatalf("RequiredGap(%v, %v) = %d, want %d", tc.travel, tc.grace, got, tc.want)
			}
		})
	}
}
