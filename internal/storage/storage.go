package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache handles persistence of downloaded price list files. Files are keyed
// by service code and the 14-digit timestamp embedded in the price list ARN,
// so a given historical version is only ever fetched once.
type Cache struct {
	dataDir string
}

// NewCache creates a new Cache rooted at dataDir, creating the directory if
// needed. A leading "~/" expands to the user's home directory.
func NewCache(dataDir string) (*Cache, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Cache{
		dataDir: dataDir,
	}, nil
}

// Path returns where the price list for the given service and version
// timestamp lives on disk.
func (c *Cache) Path(serviceCode, timestamp string) string {
	return filepath.Join(c.dataDir, fmt.Sprintf("%s_%s.json", serviceCode, timestamp))
}

// Load returns the cached price list bytes, or ok=false when this version
// has not been downloaded yet.
func (c *Cache) Load(serviceCode, timestamp string) ([]byte, bool, error) {
	data, err := os.ReadFile(c.Path(serviceCode, timestamp))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cached price list: %w", err)
	}
	return data, true, nil
}

// Save stores a downloaded price list.
func (c *Cache) Save(serviceCode, timestamp string, data []byte) error {
	if err := os.WriteFile(c.Path(serviceCode, timestamp), data, 0644); err != nil {
		return fmt.Errorf("writing cached price list: %w", err)
	}
	return nil
}
