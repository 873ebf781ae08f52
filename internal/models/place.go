package models

// Location represents geographic coordinates
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningHours carries the provider's open/closed flag for a place
type OpeningHours struct {
	OpenNow bool `json:"open_now"`
}

// Place represents an individual place from the place-search provider
type Place struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Location         Location      `json:"location"`
	Rating           *float64      `json:"rating,omitempty"`             // 0-5, absent when the provider has no rating
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"` // review count, absent when unknown
	PriceLevel       *int          `json:"price_level,omitempty"`        // 0 (cheapest) to 3, absent when unknown
	Types            []string      `json:"types,omitempty"`
	Vicinity         string        `json:"vicinity,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
}

// RestaurantType is the fixed cuisine category assigned by the classifier
type RestaurantType string

const (
	TypeJapanese RestaurantType = "japanese"
	TypeItalian  RestaurantType = "italian"
	TypeChinese  RestaurantType = "chinese"
	TypeMexican  RestaurantType = "mexican"
	TypeThai     RestaurantType = "thai"
	TypeIndian   RestaurantType = "indian"
	TypeKorean   RestaurantType = "korean"
	TypeFrench   RestaurantType = "french"
	TypeSeafood  RestaurantType = "seafood"
	TypeCafe     RestaurantType = "cafe"
	TypeFastFood RestaurantType = "fast_food"
	TypeAmerican RestaurantType = "american"
)

// RestaurantTypes lists every category the classifier can assign
var RestaurantTypes = []RestaurantType{
	TypeJapanese, TypeItalian, TypeChinese, TypeMexican, TypeThai, TypeIndian,
	TypeKorean, TypeFrench, TypeSeafood, TypeCafe, TypeFastFood, TypeAmerican,
}

// ScoredPlace is a Place with the recommendation score attached.
// Scored places are derived per search and never persisted.
type ScoredPlace struct {
	Place
	RecommendationScore int            `json:"recommendation_score"`
	Distance            float64        `json:"distance"` // meters from the user, always computed
	RestaurantType      RestaurantType `json:"restaurant_type"`
	SyntheticID         string         `json:"synthetic_id,omitempty"` // display/debug label, not a storage key
}

// RerankedPlace is a ScoredPlace with the contextual bonus applied.
// FinalScore is a ranking key only and is not normalized.
type RerankedPlace struct {
	ScoredPlace
	ContextScore int `json:"context_score"`
	FinalScore   int `json:"final_score"`
}

// PriceRange buckets a user's price tolerance
type PriceRange string

const (
	PriceRangeLow    PriceRange = "low"
	PriceRangeMedium PriceRange = "medium"
	PriceRangeHigh   PriceRange = "high"
)

// UserPreferences drives recommendation scoring. CuisineTypes grows over
// time as selections are learned.
type UserPreferences struct {
	PriceRange   PriceRange `json:"price_range"`
	MinRating    float64    `json:"min_rating"`
	MaxDistance  float64    `json:"max_distance"` // meters
	CuisineTypes []string   `json:"cuisine_types,omitempty"`
}

// PlaceReview is a single provider review on a place-details result
type PlaceReview struct {
	Text       string `json:"text"`
	AuthorName string `json:"author_name"`
}

// PlaceDetails carries the extended fields of a place-details lookup
type PlaceDetails struct {
	FormattedAddress     string        `json:"formatted_address"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Website              string        `json:"website,omitempty"`
	Reviews              []PlaceReview `json:"reviews,omitempty"`
}

// MenuItem is one dish on a restaurant menu
type MenuItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// MenuCategory groups menu items under a heading
type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Menu is the menu-lookup collaborator result for a restaurant
type Menu struct {
	Categories []MenuCategory `json:"categories"`
}

// SelectedRestaurant is the restaurant a user is currently viewing,
// optionally with menu data for the assistant to ground answers on
type SelectedRestaurant struct {
	PlaceID string `json:"place_id,omitempty"`
	Name    string `json:"name"`
	Menu    *Menu  `json:"menu,omitempty"`
}

// Weather is the coarse weather signal used for contextual reranking
type Weather string

const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
)
