package interfaces

import (
	"context"

	"github.com/ternarybob/sapore/internal/models"
)

// PlacesService defines the interface for place provider operations
type PlacesService interface {
	// NearbySearch returns restaurants around a location, within radius
	// meters. A provider result of zero places is not an error.
	NearbySearch(ctx context.Context, location models.Location, radius int) ([]models.Place, error)

	// PlaceDetails returns extended details for a single place.
	PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}
