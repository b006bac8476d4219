package configs

import (
	"os"
	"path/filepath"
)

// Settings holds the directories stegvault reads and writes outside the
// files a user names on the command line.
type Settings struct {
	// ConfigDir holds config.toml.
	ConfigDir string

	// DataDir holds the audit journal.
	DataDir string

	// ConfigOverride is STEGVAULT_CONFIG, if set.
	ConfigOverride string
}

var UserSettings *Settings

func init() {
	UserSettings = NewSettings()
}

// NewSettings resolves paths from XDG_CONFIG_HOME, XDG_DATA_HOME and
// STEGVAULT_CONFIG, falling back to the platform defaults.
func NewSettings() *Settings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			configDir = dir
		} else {
			configDir = filepath.Join(homeDir, ".config")
		}
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigDir:      filepath.Join(configDir, "stegvault"),
		DataDir:        filepath.Join(dataDir, "stegvault"),
		ConfigOverride: os.Getenv("STEGVAULT_CONFIG"),
	}
}

// ConfigPath is where config.toml is loaded from and saved to.
func (s *Settings) ConfigPath() string {
	if s.ConfigOverride != "" {
		return s.ConfigOverride
	}
	return filepath.Join(s.ConfigDir, "config.toml")
}

// AuditLogPath is the JSON Lines audit journal.
func (s *Settings) AuditLogPath() string {
	return filepath.Join(s.DataDir, "audit.jsonl")
}
