package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "weight-loss-tracker"
	dbFileName     = "tracker.db"
	configFileName = "config.yaml"
	photoDirName   = "photos"
	backupDirName  = "backups"
)

func appDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// SiblingDir places a data directory next to the database file so a custom
// --db keeps its photos and backups together.
func SiblingDir(dbPath, name string) string {
	return filepath.Join(filepath.Dir(dbPath), name)
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
