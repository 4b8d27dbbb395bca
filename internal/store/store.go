package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cafe-menu/internal/models"

	"github.com/rs/zerolog"
)

// Collection is whole-array JSON persistence for one entity type. Every
// write replaces the entire file, so all read-modify-write cycles must
// go through Update to hold the collection lock across the cycle.
type Collection[T any] struct {
	path   string
	mu     sync.RWMutex
	logger zerolog.Logger
}

func newCollection[T any](dir, file string, logger zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		path:   filepath.Join(dir, file),
		logger: logger.With().Str("collection", file).Logger(),
	}
}

// Read returns the persisted array. A missing file is initialized to an
// empty array. A parse or IO failure is logged and degrades to an empty
// array instead of propagating; availability over consistency.
func (c *Collection[T]) Read() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.readLocked()
}

func (c *Collection[T]) readLocked() []T {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		if werr := c.writeLocked([]T{}); werr != nil {
			c.logger.Error().Err(werr).Msg("Failed to initialize collection file")
		}
		return []T{}
	}
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to read collection, using empty")
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Error().Err(err).Msg("Failed to parse collection, using empty")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Write replaces the whole file. The payload is staged to a temp file in
// the same directory and renamed over the target so a crash mid-write
// never leaves a half-written collection behind.
func (c *Collection[T]) Write(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(items)
}

func (c *Collection[T]) writeLocked(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", c.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("stage %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("stage %s: %w", c.path, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

// Update runs a read-modify-write cycle under the collection lock. The
// callback receives the current array and returns the array to persist;
// returning an error aborts without writing.
func (c *Collection[T]) Update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.readLocked()
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.writeLocked(next)
}

// Store bundles the entity collections backing the service layer, one
// JSON file per type under a single data directory.
type Store struct {
	MenuItems *Collection[models.MenuItem]
	Settings  *Collection[models.CafeSettings]
	Users     *Collection[models.User]

	dir    string
	logger zerolog.Logger
}

func Open(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &Store{
		MenuItems: newCollection[models.MenuItem](dir, "menu-items.json", logger),
		Settings:  newCollection[models.CafeSettings](dir, "cafe-settings.json", logger),
		Users:     newCollection[models.User](dir, "users.json", logger),
		dir:       dir,
		logger:    logger,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}
