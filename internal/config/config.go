// Package config provides CLI settings loading and management.
package config

// LogSettings contains logging-related settings.
type LogSettings struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Settings represents the tabrec CLI settings.
// Loaded from ~/.tabrec/config.yaml, overridable via TABREC_* env vars.
type Settings struct {
	// DataRoot is the directory relative dataset paths resolve against.
	// Env: TABREC_DATA_ROOT
	DataRoot string `json:"dataRoot,omitempty" mapstructure:"dataRoot"`

	// Output is the default render format for show and registry commands.
	// Valid values: "yaml" (default), "json", "table".
	// Env: TABREC_OUTPUT
	Output string `json:"output,omitempty" mapstructure:"output"`

	// Log contains logging-related settings.
	Log LogSettings `json:"log,omitempty" mapstructure:"log"`
}

// DefaultSettings returns Settings with all default values populated.
func DefaultSettings() *Settings {
	return &Settings{
		Output: "yaml",
	}
}

// WithDefaults fills unset fields with their defaults.
func (s *Settings) WithDefaults() *Settings {
	out := *s
	if out.Output == "" {
		out.Output = "yaml"
	}
	return &out
}
