package badger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sapore/internal/interfaces"
	"github.com/ternarybob/sapore/internal/models"
)

// PreferenceStorage implements the PreferenceStorage interface for Badger
type PreferenceStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPreferenceStorage creates a new PreferenceStorage instance
func NewPreferenceStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PreferenceStorage {
	return &PreferenceStorage{
		db:     db,
		logger: logger,
	}
}

// normalizeID converts a user ID to lowercase for case-insensitive storage
func (s *PreferenceStorage) normalizeID(userID string) string {
	return strings.ToLower(strings.TrimSpace(userID))
}

// SaveProfile stores or replaces the preference profile for a user. The
// original CreatedAt survives an update.
func (s *PreferenceStorage) SaveProfile(ctx context.Context, profile *models.PreferenceProfile) error {
	if profile == nil || profile.ID == "" {
		return fmt.Errorf("preference profile requires a user ID")
	}

	id := s.normalizeID(profile.ID)
	now := time.Now()

	stored := *profile
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	var existing models.PreferenceProfile
	if err := s.db.Store().Get(id, &existing); err == nil {
		stored.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Store().Upsert(id, &stored); err != nil {
		return fmt.Errorf("failed to save preference profile: %w", err)
	}

	s.logger.Debug().
		Str("user_id", id).
		Int("cuisine_types", len(stored.Preferences.CuisineTypes)).
		Msg("Preference profile saved")

	return nil
}

// GetProfile returns the preference profile for a user, or nil when none
// exists.
func (s *PreferenceStorage) GetProfile(ctx context.Context, userID string) (*models.PreferenceProfile, error) {
	id := s.normalizeID(userID)

	var profile models.PreferenceProfile
	err := s.db.Store().Get(id, &profile)
	if err == badgerhold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference profile: %w", err)
	}

	return &profile, nil
}

// DeleteProfile removes a user's preference profile. Deleting a missing
// profile is not an error.
func (s *PreferenceStorage) DeleteProfile(ctx context.Context, userID string) error {
	id := s.normalizeID(userID)

	err := s.db.Store().Delete(id, &models.PreferenceProfile{})
	if err == badgerhold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete preference profile: %w", err)
	}

	return nil
}

// CountProfiles returns the number of stored profiles.
func (s *PreferenceStorage) CountProfiles(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.PreferenceProfile{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count preference profiles: %w", err)
	}
	return int(count), nil
}
