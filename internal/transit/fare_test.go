package transit

import "testing"

func TestFareTiers(t *testing.T) {
	cases := []struct {
		km   float64
		want int
	}{
		{0, 10},
		{2, 10},
		{2.01, 15},
		{3.9, 15},
		{5, 15},
		{10, 20},
		{14.9, 25},
		{20, 30},
		{25, 40},
		{30, 50},
		{30.2, 61},
		{31, 62},
		{45, 62},
	}
	for _, tc := range cases {
		if got := Fare(tc.km); got != tc.want {
			t.Errorf("Fare(%v) = %d, want %d", tc.km, got, tc.want)
		}
	}
}

func TestFareMonotonic(t *testing.T) {
	prev := Fare(0)
	for km := 0.05; km < 50; km += 0.05 {
		f := Fare(km)
		if f < prev {
			t.Fatalf("Fare(%.2f) = %d < previous %d", km, f, prev)
		}
		prev = f
	}
}

func TestEstimatedTime(t *testing.T) {
	cases := map[int]int{1: 3, 2: 5, 3: 7, 12: 25}
	for n, want := range cases {
		if got := EstimatedTime(n); got != want {
			t.Errorf("EstimatedTime(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestInterchangeCount(t *testing.T) {
	cases := []struct {
		lines []string
		want  int
	}{
		{nil, 0},
		{[]string{"red"}, 0},
		{[]string{"red", "red", "red"}, 0},
		{[]string{"red", "interchange", "blue"}, 2},
		{[]string{"red", "blue", "red"}, 2},
		{[]string{"red", "red", "blue", "blue"}, 1},
	}
	for _, tc := range cases {
		if got := InterchangeCount(tc.lines); got != tc.want {
			t.Errorf("InterchangeCount(%v) = %d, want %d", tc.lines, got, tc.want)
		}
	}
}
