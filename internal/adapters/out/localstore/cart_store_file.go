// internal/adapters/out/localstore/cart_store_file.go
package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	cartdom "homeplate/internal/domain/cart"
)

// StorageKey is the fixed key the cart lives under on the device; the file
// name derives from it so every app start finds the same cart.
const StorageKey = "cart"

// CartStoreFile persists the device-local cart as one JSON file. It is not
// part of the shared store and never touched by a polling cycle.
type CartStoreFile struct {
	Dir string
}

func NewCartStoreFile(dir string) *CartStoreFile {
	return &CartStoreFile{Dir: strings.TrimSpace(dir)}
}

func (s *CartStoreFile) path() string {
	return filepath.Join(s.Dir, StorageKey+".json")
}

// Load returns (nil, nil) when nothing was persisted yet.
func (s *CartStoreFile) Load() ([]cartdom.Item, error) {
	if s == nil || s.Dir == "" {
		return nil, errors.New("cart_store_file: dir is empty")
	}
	b, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var items []cartdom.Item
	if err := json.Unmarshal(b, &items); err != nil {
		// 壊れた永続データは空カートとして扱う（落とさない）
		return nil, nil
	}
	return items, nil
}

func (s *CartStoreFile) Save(items []cartdom.Item) error {
	if s == nil || s.Dir == "" {
		return errors.New("cart_store_file: dir is empty")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), b, 0o644)
}
