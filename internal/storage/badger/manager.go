package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/common"
	"github.com/ternarybob/sapore/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db         *BadgerDB
	preference interfaces.PreferenceStorage
	logger     arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:         db,
		preference: NewPreferenceStorage(db, logger),
		logger:     logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// PreferenceStorage returns the Preference storage interface
func (m *Manager) PreferenceStorage() interfaces.PreferenceStorage {
	return m.preference
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
