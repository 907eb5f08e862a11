package grant_store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/ports"
	"gopkg.in/yaml.v3"
)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	path     string      // Path to the grants file
	dirPerm  os.FileMode // Permission for created directories
	filePerm os.FileMode // Permission for the grants file
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		path:     filepath.Join(os.Getenv("HOME"), ".permflow", "grants.yaml"),
		dirPerm:  0o755, // User config directory
		filePerm: 0o600, // User-only read/write (secure default)
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the grants file.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.path = path
	}
}

// WithFilePermissions sets the file permissions for the grants file.
// Default is 0o600 (user-only). Use with caution.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the directory permissions for the grants directory.
// Default is 0o755.
func WithDirPermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

// FileStore provides file-based persistence for a device's grant table.
type FileStore struct {
	config fileStoreConfig
	mu     sync.Mutex
}

// NewFileStore creates a new FileStore with the given options.
func NewFileStore(opts ...FileStoreOption) ports.GrantStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Load retrieves the stored grant table.
func (s *FileStore) Load() (*entities.GrantTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		return entities.NewGrantTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read grant store: %w", err)
	}

	grants := entities.NewGrantTable()
	if err := yaml.Unmarshal(data, grants); err != nil {
		return nil, fmt.Errorf("failed to parse grant store: %w", err)
	}
	if grants.Grants == nil {
		grants.Grants = make(map[entities.Capability]entities.GrantEntry)
	}
	return grants, nil
}

// Save persists the grant table, replacing the file atomically.
func (s *FileStore) Save(grants *entities.GrantTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(grants)
	if err != nil {
		return fmt.Errorf("failed to marshal grants: %w", err)
	}

	dir := filepath.Dir(s.config.path)
	if err := os.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create grant store directory: %w", err)
	}

	tmp := s.config.path + ".tmp"
	if err := os.WriteFile(tmp, data, s.config.filePerm); err != nil {
		return fmt.Errorf("failed to write grant store: %w", err)
	}
	if err := os.Rename(tmp, s.config.path); err != nil {
		return fmt.Errorf("failed to write grant store: %w", err)
	}
	return nil
}

// ConfigPath returns the path to the backing store.
func (s *FileStore) ConfigPath() string {
	return s.config.path
}

// MemoryStore keeps the grant table in memory. It is used when no grants
// file is configured.
type MemoryStore struct {
	mu     sync.Mutex
	grants *entities.GrantTable
}

// NewMemoryStore creates a MemoryStore seeded with a copy of initial.
func NewMemoryStore(initial *entities.GrantTable) *MemoryStore {
	if initial == nil {
		initial = entities.NewGrantTable()
	}
	return &MemoryStore{grants: initial.Clone()}
}

// Load returns a copy of the stored table.
func (s *MemoryStore) Load() (*entities.GrantTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grants.Clone(), nil
}

// Save replaces the stored table with a copy of grants.
func (s *MemoryStore) Save(grants *entities.GrantTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants = grants.Clone()
	return nil
}

// ConfigPath returns a marker; nothing is written to disk.
func (s *MemoryStore) ConfigPath() string {
	return "(memory)"
}
