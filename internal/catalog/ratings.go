package catalog

import "math"

// MaxRating is the rating scale ceiling.
const MaxRating = 5

// ClampRating confines a rating to [0, max].
func ClampRating(value float64, max float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > max {
		return max
	}
	return value
}

// AverageRating averages a list of ratings rounded to the given number
// of decimals. An empty list averages to 0.
func AverageRating(ratings []float64, precision int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += ClampRating(r, MaxRating)
	}
	factor := math.Pow(10, float64(precision))
	return math.Round(sum/float64(len(ratings))*factor) / factor
}

// RatingDistribution buckets ratings into whole-star counts 1..max.
func RatingDistribution(ratings []float64, max int) map[int]int {
	distribution := make(map[int]int, max)
	for i := 1; i <= max; i++ {
		distribution[i] = 0
	}
	for _, r := range ratings {
		score := int(math.Round(ClampRating(r, float64(max))))
		if score >= 1 && score <= max {
			distribution[score]++
		}
	}
	return distribution
}

// RatingSummary aggregates count, average, and distribution.
type RatingSummary struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// SummarizeRatings builds a RatingSummary over the ratings list.
func SummarizeRatings(ratings []float64) RatingSummary {
	return RatingSummary{
		Count:        len(ratings),
		Average:      AverageRating(ratings, 1),
		Distribution: RatingDistribution(ratings, MaxRating),
	}
}
