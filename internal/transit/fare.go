package transit

import "math"

// Fare tiers in whole currency units, keyed by the upper distance bound in
// kilometres. Beyond the last tier the fare is 2 per km, capped.
var fareTiers = []struct {
	upToKm float64
	fare   int
}{
	{2, 10},
	{5, 15},
	{10, 20},
	{15, 25},
	{20, 30},
	{25, 40},
	{30, 50},
}

const maxFare = 62

const (
	minutesPerHop = 2
	waitMinutes   = 3
)

func Fare(km float64) int {
	for _, t := range fareTiers {
		if km <= t.upToKm {
			return t.fare
		}
	}
	return min(maxFare, int(math.Ceil(km*2)))
}

// EstimatedTime returns the travel time in minutes for a path visiting
// stationCount stations, endpoints included.
func EstimatedTime(stationCount int) int {
	return int(math.Round(float64((stationCount-1)*minutesPerHop + waitMinutes)))
}

// InterchangeCount counts the places where consecutive stations carry
// different line labels.
func InterchangeCount(lines []string) int {
	n := 0
	for i := 1; i < len(lines); i++ {
		if lines[i] != lines[i-1] {
			n++
		}
	}
	return n
}
