package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/sapore/internal/models"
)

func testPlace(name string, lat, lng float64, rating float64, types ...string) models.Place {
	return models.Place{
		PlaceID:  "place-" + name,
		Name:     name,
		Location: models.Location{Lat: lat, Lng: lng},
		Rating:   floatPtr(rating),
		Types:    types,
	}
}

func TestRecommender_Recommend(t *testing.T) {
	recommender := NewRecommender(arbor.NewLogger(), 10)
	userLocation := models.Location{Lat: 35.0, Lng: 139.0}
	prefs := models.UserPreferences{MaxDistance: 2000}

	places := []models.Place{
		testPlace("Far Low", 35.05, 139.0, 2.0, "restaurant"),            // out of range, low rating
		testPlace("Near High", 35.0005, 139.0, 4.8, "restaurant"),        // close, high rating
		testPlace("Near Sushi", 35.001, 139.0, 4.0, "sushi_restaurant"),  // close, decent rating
	}

	result := recommender.Recommend(places, userLocation, prefs)

	require.Len(t, result, 3)
	assert.Equal(t, "Near High", result[0].Name)
	assert.Greater(t, result[0].RecommendationScore, result[1].RecommendationScore)
	assert.Greater(t, result[1].RecommendationScore, result[2].RecommendationScore)

	// Distance is attached even for the out-of-range place
	for _, p := range result {
		assert.Greater(t, p.Distance, 0.0, "distance should be attached for %s", p.Name)
	}

	// Classification and synthetic labels come from the batch index,
	// assigned before sorting.
	for _, p := range result {
		if p.Name == "Near Sushi" {
			assert.Equal(t, models.TypeJapanese, p.RestaurantType)
			assert.Equal(t, "japanese_restaurant_1_2", p.SyntheticID)
		}
	}
}

func TestRecommender_TruncatesToMaxResults(t *testing.T) {
	recommender := NewRecommender(arbor.NewLogger(), 2)
	userLocation := models.Location{Lat: 35.0, Lng: 139.0}

	places := []models.Place{
		testPlace("One", 35.001, 139.0, 3.0, "restaurant"),
		testPlace("Two", 35.002, 139.0, 4.0, "restaurant"),
		testPlace("Three", 35.003, 139.0, 5.0, "restaurant"),
	}

	result := recommender.Recommend(places, userLocation, models.UserPreferences{MaxDistance: 1000})

	require.Len(t, result, 2)
	assert.Equal(t, "Three", result[0].Name)
}

func TestRecommender_DeterministicAcrossRuns(t *testing.T) {
	// The batch is scored concurrently; results must still be identical
	// run to run because each place keeps its batch index.
	recommender := NewRecommender(arbor.NewLogger(), 10)
	userLocation := models.Location{Lat: 35.0, Lng: 139.0}
	prefs := models.UserPreferences{MaxDistance: 3000}

	places := make([]models.Place, 0, 20)
	for i := 0; i < 20; i++ {
		places = append(places, testPlace(
			string(rune('a'+i)), 35.0+float64(i)*0.0005, 139.0, 3.0+float64(i%3)*0.5, "restaurant"))
	}

	first := recommender.Recommend(places, userLocation, prefs)
	for run := 0; run < 5; run++ {
		again := recommender.Recommend(places, userLocation, prefs)
		require.Len(t, again, len(first))
		for i := range first {
			assert.Equal(t, first[i].Name, again[i].Name, "run %d position %d", run, i)
			assert.Equal(t, first[i].RecommendationScore, again[i].RecommendationScore)
			assert.Equal(t, first[i].SyntheticID, again[i].SyntheticID)
		}
	}
}

func TestLearnPreferences(t *testing.T) {
	prefs := models.UserPreferences{
		PriceRange:   models.PriceRangeMedium,
		MaxDistance:  1000,
		CuisineTypes: []string{"restaurant"},
	}

	level := 1
	selected := models.Place{
		Name:       "Taco Fiesta",
		Types:      []string{"restaurant", "mexican_restaurant"},
		PriceLevel: &level,
	}

	updated := LearnPreferences(prefs, selected)

	assert.Equal(t, []string{"restaurant", "mexican_restaurant"}, updated.CuisineTypes,
		"unseen tags appended, duplicates skipped")
	assert.Equal(t, models.PriceRangeLow, updated.PriceRange)

	// No price level leaves the range untouched
	updated = LearnPreferences(updated, models.Place{Types: []string{"cafe"}})
	assert.Equal(t, models.PriceRangeLow, updated.PriceRange)
	assert.Contains(t, updated.CuisineTypes, "cafe")

	level3 := 3
	updated = LearnPreferences(updated, models.Place{PriceLevel: &level3})
	assert.Equal(t, models.PriceRangeHigh, updated.PriceRange)
}
