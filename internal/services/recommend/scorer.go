// Package recommend provides the scoring, classification, and contextual
// reranking engine for nearby-restaurant recommendations. Scoring and
// classification are pure calculation functions and perform no I/O.
package recommend

import (
	"math"

	"github.com/ternarybob/sapore/internal/models"
)

// Scoring term weights. Each term contributes only when its input is present,
// so the effective score range is 0-100.
const (
	WeightRating    = 40.0
	WeightProximity = 30.0
	WeightPrice     = 20.0
	WeightReviews   = 10.0

	// DefaultMaxDistance is applied when preferences carry no distance cap.
	DefaultMaxDistance = 1000.0 // meters

	// fullReviewVolume is the review count at which the review term saturates.
	fullReviewVolume = 100.0

	earthRadiusKm = 6371.0
)

// Distance computes the great-circle distance between two coordinates in
// meters using the haversine formula.
func Distance(from, to models.Location) float64 {
	dLat := deg2rad(to.Lat - from.Lat)
	dLng := deg2rad(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(from.Lat))*math.Cos(deg2rad(to.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c * 1000
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Score computes the recommendation score for a place as a deterministic
// weighted sum of four independent terms:
//
//   - rating:    (rating/5) * 40, when the place has a rating
//   - proximity: (1 - distance/maxDistance) * 30, when within maxDistance
//   - price:     ((4 - priceLevel)/4) * 20, when a price level is known
//   - reviews:   min(total/100, 1) * 10, when a review count is known
//
// Missing inputs zero out their term; no term is ever negative. The result
// is rounded to the nearest integer. The computed distance in meters is
// returned alongside the score regardless of whether it earned points.
func Score(place models.Place, userLocation models.Location, prefs models.UserPreferences) (int, float64) {
	score := 0.0

	if place.Rating != nil {
		score += (*place.Rating / 5) * WeightRating
	}

	distance := Distance(userLocation, place.Location)
	maxDistance := prefs.MaxDistance
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	if distance <= maxDistance {
		score += (1 - distance/maxDistance) * WeightProximity
	}

	if place.PriceLevel != nil {
		// Lower price levels score higher
		score += (float64(4-*place.PriceLevel) / 4) * WeightPrice
	}

	if place.UserRatingsTotal != nil {
		volume := math.Min(float64(*place.UserRatingsTotal)/fullReviewVolume, 1)
		score += volume * WeightReviews
	}

	return int(math.Round(score)), distance
}
