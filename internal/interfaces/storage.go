package interfaces

import (
	"context"

	"github.com/ternarybob/sapore/internal/models"
)

// PreferenceStorage - interface for learned user preference persistence
type PreferenceStorage interface {
	// SaveProfile stores or replaces the preference profile for a user.
	SaveProfile(ctx context.Context, profile *models.PreferenceProfile) error

	// GetProfile returns the preference profile for a user, or nil when none
	// has been stored.
	GetProfile(ctx context.Context, userID string) (*models.PreferenceProfile, error)

	// DeleteProfile removes a user's preference profile.
	DeleteProfile(ctx context.Context, userID string) error

	// CountProfiles returns the number of stored profiles.
	CountProfiles(ctx context.Context) (int, error)
}

// StorageManager - manages storage lifecycle and access to typed stores
type StorageManager interface {
	PreferenceStorage() PreferenceStorage
	Close() error
}
