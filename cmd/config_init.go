package cmd

import (
	"github.com/PolarWolf314/stegvault/internal/configs"
	"github.com/PolarWolf314/stegvault/internal/ui"
	"github.com/PolarWolf314/stegvault/internal/utils"

	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file with the defaults")
	ConfigCmd.AddCommand(configInitCmd)
}

func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		path := configs.UserSettings.ConfigPath()
		Logger.Debugf("Config path: %s", path)

		spinner, cleanup := startSpinner("Writing configuration...")
		defer cleanup()

		if utils.FileExists(path) && !configInitForce {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Config already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Arrow() + " Pass " + ui.Flag.Sprint("--force") + " to reset it to the defaults"
			return nil
		}

		if err := configs.Save(configs.Default()); err != nil {
			return failure(spinner, err)
		}

		spinner.FinalMSG = ui.Tick() + " Config written to " + ui.Path.Sprint(path)
		return nil
	},
}
