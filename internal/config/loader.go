package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for tabrec settings.
const envPrefix = "TABREC"

// Loader handles loading and merging settings from file and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new settings loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("dataRoot", "TABREC_DATA_ROOT")
	_ = v.BindEnv("output", "TABREC_OUTPUT")

	return &Loader{v: v}
}

// Load loads settings from the given file path. If settingsFile is empty,
// the default path is used. Environment variables take precedence over file
// values; a missing file is not an error.
func (l *Loader) Load(settingsFile string) (*Settings, error) {
	if settingsFile == "" {
		var err error
		settingsFile, err = GetSettingsFile()
		if err != nil {
			return nil, fmt.Errorf("getting settings file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(settingsFile)
	if err != nil {
		return nil, fmt.Errorf("expanding settings path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading settings file: %w", err)
			}
		}
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}

	return &s, nil
}

// LoadWithDefaults loads settings and applies defaults.
func (l *Loader) LoadWithDefaults(settingsFile string) (*Settings, error) {
	s, err := l.Load(settingsFile)
	if err != nil {
		return nil, err
	}

	return s.WithDefaults(), nil
}

// SettingsFileExists checks if the settings file exists.
func SettingsFileExists(settingsFile string) (bool, error) {
	if settingsFile == "" {
		var err error
		settingsFile, err = GetSettingsFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(settingsFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
