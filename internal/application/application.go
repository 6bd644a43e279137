package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "wifilog"

	// ServiceName is the name registered with the OS service manager
	ServiceName = "WifiLog"

	// EnvPrefix prefixes every environment variable read by the application
	EnvPrefix = "WIFILOG_"
)

// Version is overridden at build time with -ldflags.
var Version = "0.1.0"

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the wifilog data directory path.
// Linux: ~/.config/wifilog (via os.UserConfigDir)
// macOS: ~/Library/Application Support/wifilog
// Windows: C:\Users\{username}\AppData\Local\wifilog (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
