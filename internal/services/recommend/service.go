package recommend

import (
	"sort"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sapore/internal/models"
)

// DefaultMaxResults is the number of recommendations returned when no limit
// is configured.
const DefaultMaxResults = 10

// Recommender orchestrates scoring and classification over a batch of
// places. Constructed per dependency injection rather than a process-wide
// singleton; it holds no per-request state.
type Recommender struct {
	logger     arbor.ILogger
	maxResults int
}

// NewRecommender creates a recommender returning at most maxResults places
// per batch (0 means DefaultMaxResults).
func NewRecommender(logger arbor.ILogger, maxResults int) *Recommender {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Recommender{
		logger:     logger,
		maxResults: maxResults,
	}
}

// Recommend scores and classifies the batch, then returns the top places
// sorted descending by recommendation score. Scoring has no cross-place
// shared state, so the batch is mapped concurrently; results keep their
// batch index for deterministic ordering and synthetic labels.
func (r *Recommender) Recommend(places []models.Place, userLocation models.Location, prefs models.UserPreferences) []models.ScoredPlace {
	scored := make([]models.ScoredPlace, len(places))

	var wg sync.WaitGroup
	for i, place := range places {
		wg.Add(1)
		go func(i int, place models.Place) {
			defer wg.Done()
			scored[i] = r.scoreOne(place, userLocation, prefs, i)
		}(i, place)
	}
	wg.Wait()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RecommendationScore > scored[j].RecommendationScore
	})

	if len(scored) > r.maxResults {
		scored = scored[:r.maxResults]
	}

	r.logger.Debug().
		Int("batch_size", len(places)).
		Int("returned", len(scored)).
		Msg("Recommendation batch scored")

	return scored
}

func (r *Recommender) scoreOne(place models.Place, userLocation models.Location, prefs models.UserPreferences, index int) models.ScoredPlace {
	score, distance := Score(place, userLocation, prefs)

	category, matched := classify(place)
	if !matched {
		r.logger.Debug().
			Str("place", place.Name).
			Msg("No cuisine signal matched, defaulting to american")
	}

	return models.ScoredPlace{
		Place:               place,
		RecommendationScore: score,
		Distance:            distance,
		RestaurantType:      category,
		SyntheticID:         SyntheticID(category, index),
	}
}

// LearnPreferences folds a selected place into the user's preferences:
// unseen type tags are appended to CuisineTypes and the price range is
// re-derived from the place's price level. Returns the updated preferences.
func LearnPreferences(prefs models.UserPreferences, selected models.Place) models.UserPreferences {
	for _, t := range selected.Types {
		if !containsString(prefs.CuisineTypes, t) {
			prefs.CuisineTypes = append(prefs.CuisineTypes, t)
		}
	}

	if selected.PriceLevel != nil {
		switch {
		case *selected.PriceLevel <= 1:
			prefs.PriceRange = models.PriceRangeLow
		case *selected.PriceLevel <= 2:
			prefs.PriceRange = models.PriceRangeMedium
		default:
			prefs.PriceRange = models.PriceRangeHigh
		}
	}

	return prefs
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
