package cmd

import (
	"strings"

	"github.com/PolarWolf314/stegvault/internal/configs"
	"github.com/PolarWolf314/stegvault/internal/ui"

	"github.com/spf13/cobra"
)

func init() {
	ConfigCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Long: `Sets a configuration value and saves the file. Invalid values are rejected
and leave the file unchanged.

Keys: ` + strings.Join(configs.Keys(), ", ") + `

Examples:
  stegvault config set crypto.suite chacha20-poly1305
  stegvault config set image.output_format tiff
  stegvault config set audit.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		Logger.Infof("Starting config set command")
		Logger.Debugf("Setting %s = %s", key, value)

		spinner, cleanup := startSpinner("Updating configuration...")
		defer cleanup()

		config, err := configs.Load()
		if err != nil {
			return failure(spinner, err)
		}
		if err := config.Set(key, value); err != nil {
			return failure(spinner, err)
		}
		if err := configs.Save(config); err != nil {
			return failure(spinner, err)
		}

		spinner.FinalMSG = ui.Tick() + " Set " + ui.Code.Sprint(key) + " to " + ui.Highlight.Sprint(value)
		return nil
	},
}
