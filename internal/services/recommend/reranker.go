package recommend

import (
	"sort"

	"github.com/ternarybob/sapore/internal/models"
)

// Contextual bonus values
const (
	hourBonus = 20
	rainBonus = 10
)

// Rerank applies time-of-day and weather bonuses to a scored batch and
// re-sorts it. Hour buckets are mutually exclusive:
//
//	06-11  cafes (+20)
//	11-14  restaurants (+20)
//	14-17  cafes and bakeries (+20)
//	17-21  restaurants (+20)
//
// Rainy weather adds +10 for cafes, independent of the hour bucket.
// FinalScore = RecommendationScore + ContextScore. The sort is stable and
// descending: equal final scores preserve input order.
func Rerank(places []models.ScoredPlace, hour int, weather models.Weather) []models.RerankedPlace {
	reranked := make([]models.RerankedPlace, len(places))

	for i, place := range places {
		contextScore := 0

		switch {
		case hour >= 6 && hour < 11:
			if hasTag(place.Types, "cafe") {
				contextScore += hourBonus
			}
		case hour >= 11 && hour < 14:
			if hasTag(place.Types, "restaurant") {
				contextScore += hourBonus
			}
		case hour >= 14 && hour < 17:
			if hasTag(place.Types, "cafe") || hasTag(place.Types, "bakery") {
				contextScore += hourBonus
			}
		case hour >= 17 && hour < 21:
			if hasTag(place.Types, "restaurant") {
				contextScore += hourBonus
			}
		}

		if weather == models.WeatherRainy && hasTag(place.Types, "cafe") {
			contextScore += rainBonus
		}

		reranked[i] = models.RerankedPlace{
			ScoredPlace:  place,
			ContextScore: contextScore,
			FinalScore:   place.RecommendationScore + contextScore,
		}
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].FinalScore > reranked[j].FinalScore
	})

	return reranked
}

// hasTag checks exact tag membership. Unlike classification, contextual
// bonuses key on the literal provider tag.
func hasTag(types []string, tag string) bool {
	for _, t := range types {
		if t == tag {
			return true
		}
	}
	return false
}
