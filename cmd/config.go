package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stegvault configuration",
	Long: `Provides commands for managing the user configuration file.

The file lives at $XDG_CONFIG_HOME/stegvault/config.toml unless
STEGVAULT_CONFIG points elsewhere.

Examples:
  # Write a config file with the defaults
  stegvault config init

  # Show the effective configuration
  stegvault config show

  # Switch to ChaCha20-Poly1305
  stegvault config set crypto.suite chacha20-poly1305`,
}

func resetConfigState() {
	resetConfigInitState()
	resetConfigShowState()
}
