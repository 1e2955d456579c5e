package helpers

import "math"

// RoundTo rounds value half away from zero to the given number of decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Percentage returns round(part/total*100), or 0 when total is 0
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// MinutesToHours converts whole minutes to hours rounded to the given places
func MinutesToHours(minutes int, places int) float64 {
	return RoundTo(float64(minutes)/60, places)
}
