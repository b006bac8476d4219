package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/stegvault/internal/configs"
	"github.com/PolarWolf314/stegvault/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration stegvault will use, with defaults filled in for
anything the file does not set.

Examples:
  stegvault config show
  stegvault config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		path := configs.UserSettings.ConfigPath()

		config, err := configs.Load()
		if err != nil {
			return failureWithoutSpinner(err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		source := "defaults, no file"
		if utils.FileExists(path) {
			source = path
		}
		fmt.Println(color.CyanString("Configuration") + " (" + source + "):")
		fmt.Println()
		for _, key := range configs.Keys() {
			value, _ := config.Get(key)
			fmt.Printf("  %-28s %s\n", key, color.GreenString(value))
		}
		fmt.Println()
		fmt.Printf("  %-28s %s\n", "audit journal", color.YellowString(configs.UserSettings.AuditLogPath()))
		return nil
	},
}
