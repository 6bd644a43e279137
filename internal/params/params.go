package params

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/wifilog/internal/application"
)

const (
	configFileName  = "wifilog.ini"
	runInfoFileName = "run.json"
	sqliteFileName  = "connections.db"
	boltFileName    = "connections.bolt"
)

// AppdataDir returns the application data directory, creating it if needed.
func AppdataDir() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	return dir, nil
}

// ConfigPath returns the default INI configuration path.
func ConfigPath() (string, error) {
	return inAppdata(configFileName)
}

// RunInfoPath returns the path of the file describing the running daemon.
func RunInfoPath() (string, error) {
	return inAppdata(runInfoFileName)
}

// DatabasePath returns the default database path for the given backend.
func DatabasePath(backend string) (string, error) {
	if backend == "bolt" {
		return inAppdata(boltFileName)
	}

	return inAppdata(sqliteFileName)
}

func inAppdata(name string) (string, error) {
	dir, err := AppdataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}
