package ports

import "github.com/reglet-dev/permflow/domain/entities"

// GrantStore provides persistence for a device's grant table.
type GrantStore interface {
	// Load retrieves the stored grants.
	// Returns an empty table (not error) if nothing was stored yet.
	Load() (*entities.GrantTable, error)

	// Save persists the grants.
	Save(grants *entities.GrantTable) error

	// ConfigPath returns the path to the backing store (for user messaging).
	ConfigPath() string
}
