package recommend

import (
	"testing"

	"github.com/ternarybob/sapore/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		place models.Place
		want  models.RestaurantType
	}{
		{
			name:  "japanese by type tag",
			place: models.Place{Name: "Tanaka", Types: []string{"restaurant", "japanese_restaurant"}},
			want:  models.TypeJapanese,
		},
		{
			name:  "japanese by name keyword",
			place: models.Place{Name: "Sakura Garden", Types: []string{"restaurant"}},
			want:  models.TypeJapanese,
		},
		{
			name: "earlier rule name keyword beats later rule type tag",
			// "sushi" in the name matches the japanese rule before the
			// italian type tag is ever consulted.
			place: models.Place{Name: "Sushi Roma", Types: []string{"italian"}},
			want:  models.TypeJapanese,
		},
		{
			name:  "italian by pizza type",
			place: models.Place{Name: "Slice House", Types: []string{"pizza"}},
			want:  models.TypeItalian,
		},
		{
			name:  "chinese by name",
			place: models.Place{Name: "Golden Dragon", Types: []string{"restaurant", "food"}},
			want:  models.TypeChinese,
		},
		{
			name:  "mexican by name prefix keyword",
			place: models.Place{Name: "El Mariachi Loco", Types: []string{"restaurant"}},
			want:  models.TypeMexican,
		},
		{
			name: "curry resolves to thai before indian",
			// "curry" sits in both keyword lists; the thai rule runs first.
			place: models.Place{Name: "Curry House", Types: []string{"restaurant"}},
			want:  models.TypeThai,
		},
		{
			name:  "indian by tandoor keyword",
			place: models.Place{Name: "Tandoor Palace", Types: []string{"restaurant"}},
			want:  models.TypeIndian,
		},
		{
			name:  "korean by type tag",
			place: models.Place{Name: "Han River", Types: []string{"korean_restaurant"}},
			want:  models.TypeKorean,
		},
		{
			name: "bistro resolves to french before american",
			// "bistro" sits in both keyword lists; the french rule runs first.
			place: models.Place{Name: "The Corner Bistro", Types: []string{"restaurant"}},
			want:  models.TypeFrench,
		},
		{
			name: "cafe name without cafe type resolves to french",
			// "cafe" is a french name keyword, and the french rule runs
			// before the cafe rule. Only the literal type tag reaches cafe.
			place: models.Place{Name: "Cafe Lumiere", Types: []string{"restaurant"}},
			want:  models.TypeFrench,
		},
		{
			name:  "cafe by type tag",
			place: models.Place{Name: "Morning Brew Stop", Types: []string{"cafe"}},
			want:  models.TypeCafe,
		},
		{
			name:  "seafood by name",
			place: models.Place{Name: "Lobster Shack", Types: []string{"restaurant"}},
			want:  models.TypeSeafood,
		},
		{
			name:  "fast food by takeaway type",
			place: models.Place{Name: "Quick Eats", Types: []string{"meal_takeaway"}},
			want:  models.TypeFastFood,
		},
		{
			name:  "fast food by brand keyword",
			place: models.Place{Name: "Burger Planet", Types: []string{}},
			want:  models.TypeFastFood,
		},
		{
			name:  "american by restaurant type with no cuisine signal",
			place: models.Place{Name: "The Local", Types: []string{"restaurant"}},
			want:  models.TypeAmerican,
		},
		{
			name:  "default american with no signals at all",
			place: models.Place{Name: "Xyzzy", Types: nil},
			want:  models.TypeAmerican,
		},
		{
			name:  "no type tags still matches on name",
			place: models.Place{Name: "Bangkok Kitchen", Types: nil},
			want:  models.TypeThai,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.place)
			if got != tt.want {
				t.Errorf("Classify(%q, %v) = %s, want %s", tt.place.Name, tt.place.Types, got, tt.want)
			}

			// Always a member of the fixed category set
			member := false
			for _, category := range models.RestaurantTypes {
				if got == category {
					member = true
					break
				}
			}
			if !member {
				t.Errorf("Classify() returned %q, not in the fixed category set", got)
			}

			// Pure and deterministic
			if again := Classify(tt.place); again != got {
				t.Errorf("Classify() not deterministic: %s then %s", got, again)
			}
		})
	}
}

func TestSyntheticID(t *testing.T) {
	tests := []struct {
		category models.RestaurantType
		index    int
		want     string
	}{
		{models.TypeJapanese, 0, "japanese_restaurant_1_0"},
		{models.TypeFastFood, 7, "fast_food_restaurant_1_7"},
		{models.TypeAmerican, 12, "american_restaurant_1_12"},
	}

	for _, tt := range tests {
		if got := SyntheticID(tt.category, tt.index); got != tt.want {
			t.Errorf("SyntheticID(%s, %d) = %q, want %q", tt.category, tt.index, got, tt.want)
		}
	}
}
