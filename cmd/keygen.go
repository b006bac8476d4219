package cmd

import (
	"context"

	"github.com/PolarWolf314/stegvault/internal/ui"
	"github.com/PolarWolf314/stegvault/internal/workflows"

	"github.com/spf13/cobra"
)

var keygenForce bool

func init() {
	keygenCmd.Flags().BoolVarP(&keygenForce, "force", "f", false, "replace an existing key file")
}

func resetKeygenState() {
	keygenForce = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen <path>",
	Short: "Creates a new random 256-bit key file",
	Long: `Writes 32 bytes from the system's secure random source to a file readable
only by you. Anything hidden with a key can only be recovered with that key.

Examples:
  stegvault keygen vault.key
  stegvault keygen ~/.keys/vault.key --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")

		spinner, cleanup := startSpinner("Generating key...")
		defer cleanup()

		result, err := workflows.Keygen(context.Background(), workflows.KeygenOptions{
			Path:  args[0],
			Force: keygenForce,
		})
		if err != nil {
			return failure(spinner, err)
		}

		final := ui.Tick() + " Key written to " + ui.Path.Sprint(result.Path) + "\n" +
			ui.Arrow() + " Fingerprint " + ui.Highlight.Sprint(result.Fingerprint)
		if result.Replaced {
			final += "\n" + ui.Warning.Sprint("⚠") + " The previous key was replaced; payloads hidden with it can no longer be extracted"
		}
		spinner.FinalMSG = final
		return nil
	},
}
