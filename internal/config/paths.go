package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for tabrec.
type Paths struct {
	// SettingsFile is the path to the settings file (~/.tabrec/config.yaml).
	SettingsFile string

	// HomeDir is the tabrec home directory (~/.tabrec).
	HomeDir string
}

// DefaultPaths returns the default paths for tabrec.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	tabrecHome := filepath.Join(homeDir, ".tabrec")

	return &Paths{
		SettingsFile: filepath.Join(tabrecHome, "config.yaml"),
		HomeDir:      tabrecHome,
	}, nil
}

// GetSettingsFile returns the settings file path.
// If TABREC_CONFIG is set, it takes precedence.
func GetSettingsFile() (string, error) {
	if envPath := os.Getenv("TABREC_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.SettingsFile, nil
}

// EnsureHomeDir creates the tabrec home directory if it doesn't exist.
func EnsureHomeDir() error {
	paths, err := DefaultPaths()
	if err != nil {
		return err
	}

	return os.MkdirAll(paths.HomeDir, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported, return as-is
	return path, nil
}
