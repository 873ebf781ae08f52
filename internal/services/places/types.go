// Package places provides a client for the Google Places API. This package
// centralizes all place provider interactions for the application.
package places

import (
	"fmt"

	"github.com/ternarybob/sapore/internal/models"
)

// placeGeometry wraps the provider's nested location field.
type placeGeometry struct {
	Location models.Location `json:"location"`
}

// PlaceResult is one place as returned by the provider.
type PlaceResult struct {
	PlaceID          string               `json:"place_id"`
	Name             string               `json:"name"`
	Geometry         placeGeometry        `json:"geometry"`
	Rating           *float64             `json:"rating,omitempty"`
	UserRatingsTotal *int                 `json:"user_ratings_total,omitempty"`
	PriceLevel       *int                 `json:"price_level,omitempty"`
	Types            []string             `json:"types,omitempty"`
	Vicinity         string               `json:"vicinity,omitempty"`
	OpeningHours     *models.OpeningHours `json:"opening_hours,omitempty"`
}

// toPlace flattens a provider result into the domain model.
func (r PlaceResult) toPlace() models.Place {
	return models.Place{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		Location:         r.Geometry.Location,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		PriceLevel:       r.PriceLevel,
		Types:            r.Types,
		Vicinity:         r.Vicinity,
		OpeningHours:     r.OpeningHours,
	}
}

// nearbySearchResponse is the provider's nearby search envelope.
type nearbySearchResponse struct {
	Results      []PlaceResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// detailsResponse is the provider's place details envelope.
type detailsResponse struct {
	Result       models.PlaceDetails `json:"result"`
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

// APIError represents an error from the place provider.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("places API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}
