package recommend

import (
	"fmt"
	"strings"

	"github.com/ternarybob/sapore/internal/models"
)

// classifierRule maps one cuisine category to its match signals. Type tokens
// are the authoritative signal and are checked before name keywords; the
// keyword lists are a noisier heuristic carried over as ordered lists
// ("bistro" appears under both french and american on purpose - order
// decides).
type classifierRule struct {
	category     models.RestaurantType
	typeTokens   []string
	nameKeywords []string
}

// classifierRules is evaluated top to bottom, first match wins.
var classifierRules = []classifierRule{
	{
		category:   models.TypeJapanese,
		typeTokens: []string{"japanese", "sushi", "ramen"},
		nameKeywords: []string{
			"sushi", "japanese", "ramen", "sakura", "tokyo", "zen",
			"sashimi", "tempura", "teriyaki", "wasabi", "miso", "udon",
		},
	},
	{
		category:   models.TypeItalian,
		typeTokens: []string{"italian", "pizza"},
		nameKeywords: []string{
			"italian", "pizza", "pasta", "bella", "roma", "napoli",
			"spaghetti", "lasagna", "risotto", "carbonara", "alfredo", "marinara",
		},
	},
	{
		category:   models.TypeChinese,
		typeTokens: []string{"chinese"},
		nameKeywords: []string{
			"chinese", "dragon", "wok", "golden", "peking", "shanghai",
			"kung pao", "sweet and sour", "lo mein", "chow mein", "dim sum",
			"beijing", "canton", "mandarin",
		},
	},
	{
		category:     models.TypeMexican,
		typeTokens:   []string{"mexican"},
		nameKeywords: []string{"mexican", "taco", "burrito", "el ", "mariachi", "cantina"},
	},
	{
		category:     models.TypeThai,
		typeTokens:   []string{"thai"},
		nameKeywords: []string{"thai", "bangkok", "pad thai", "curry", "spicy"},
	},
	{
		category:     models.TypeIndian,
		typeTokens:   []string{"indian"},
		nameKeywords: []string{"indian", "curry", "tandoor", "spice", "masala"},
	},
	{
		category:     models.TypeKorean,
		typeTokens:   []string{"korean"},
		nameKeywords: []string{"korean", "korean", "bbq", "kimchi", "seoul"},
	},
	{
		category:     models.TypeFrench,
		typeTokens:   []string{"french"},
		nameKeywords: []string{"french", "bistro", "cafe", "paris", "brasserie"},
	},
	{
		category:     models.TypeSeafood,
		typeTokens:   []string{"seafood"},
		nameKeywords: []string{"seafood", "fish", "oyster", "lobster", "crab"},
	},
	{
		category:     models.TypeCafe,
		typeTokens:   []string{"cafe", "coffee"},
		nameKeywords: []string{"cafe", "coffee", "espresso", "latte", "brew"},
	},
	{
		category:     models.TypeFastFood,
		typeTokens:   []string{"fast_food", "meal_takeaway"},
		nameKeywords: []string{"mcdonalds", "burger", "kfc", "subway", "pizza hut"},
	},
	{
		category:     models.TypeAmerican,
		typeTokens:   []string{"american", "steakhouse", "restaurant"},
		nameKeywords: []string{"american", "steak", "grill", "bistro", "diner"},
	},
}

// Classify infers a cuisine category from a place's type tags and display
// name. The rule table is evaluated in order; for each rule the provider's
// type tags are checked first (substring match), falling back to a
// case-insensitive keyword search over the name. Unmatched places default
// to american. Classification never fails.
func Classify(place models.Place) models.RestaurantType {
	category, _ := classify(place)
	return category
}

// classify reports the category and whether any rule actually matched, so
// callers can log the default-category fallback as a non-fatal ambiguity.
func classify(place models.Place) (models.RestaurantType, bool) {
	types := make([]string, len(place.Types))
	for i, t := range place.Types {
		types[i] = strings.ToLower(t)
	}
	name := strings.ToLower(place.Name)

	for _, rule := range classifierRules {
		for _, token := range rule.typeTokens {
			for _, t := range types {
				if strings.Contains(t, token) {
					return rule.category, true
				}
			}
		}
		for _, keyword := range rule.nameKeywords {
			if strings.Contains(name, keyword) {
				return rule.category, true
			}
		}
	}

	return models.TypeAmerican, false
}

// SyntheticID produces a deterministic display label for a classified place.
// The index is the place's position within the scored batch, not a global
// counter.
func SyntheticID(category models.RestaurantType, index int) string {
	return fmt.Sprintf("%s_restaurant_1_%d", category, index)
}
