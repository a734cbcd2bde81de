package storage

import (
	"fmt"

	"github.com/quasilyte/gdata"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
)

// GDataStore keeps progress records as items in the per-user application
// data directory managed by gdata. It holds no scores.
type GDataStore struct {
	m *gdata.Manager
}

// OpenGData opens the item store for appName.
func OpenGData(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata store: %w", err)
	}
	return &GDataStore{m: m}, nil
}

// LoadItem returns the record stored under key, or nil if there is none.
func (s *GDataStore) LoadItem(key string) ([]byte, error) {
	data, err := s.m.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load item %q: %w", key, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// SaveItem stores a record under key. Saving nil data clears the record.
func (s *GDataStore) SaveItem(key string, data []byte) error {
	if err := s.m.SaveItem(key, data); err != nil {
		return fmt.Errorf("storage: cannot save item %q: %w", key, err)
	}
	return nil
}

// DeleteItem clears the record stored under key.
func (s *GDataStore) DeleteItem(key string) error {
	return s.SaveItem(key, nil)
}

var _ sim.Store = (*GDataStore)(nil)
