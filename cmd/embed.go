package cmd

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/ui"
	"github.com/PolarWolf314/stegvault/internal/utils"
	"github.com/PolarWolf314/stegvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	embedKeyFile   string
	embedNewKey    bool
	embedType      string
	embedOutput    string
	embedMessage   string
	embedInputFile string
	embedForce     bool
)

func init() {
	embedCmd.Flags().StringVarP(&embedKeyFile, "keyfile", "k", "", "path to the 32-byte key file")
	embedCmd.Flags().BoolVar(&embedNewKey, "new-key", false, "generate the key file if it does not exist")
	embedCmd.Flags().StringVarP(&embedType, "type", "t", "", "carrier type: image, audio or document (default: from extension)")
	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "", "output file (default: output.png, output.wav or output.pdf)")
	embedCmd.Flags().StringVarP(&embedMessage, "message", "m", "", "payload text to hide")
	embedCmd.Flags().StringVarP(&embedInputFile, "input", "i", "", "file whose contents to hide, or - for stdin")
	embedCmd.Flags().BoolVarP(&embedForce, "force", "f", false, "replace an existing output file")
	_ = embedCmd.MarkFlagRequired("keyfile")
	embedCmd.MarkFlagsMutuallyExclusive("message", "input")
}

func resetEmbedState() {
	embedKeyFile = ""
	embedNewKey = false
	embedType = ""
	embedOutput = ""
	embedMessage = ""
	embedInputFile = ""
	embedForce = false
}

var embedCmd = &cobra.Command{
	Use:   "embed <carrier>",
	Short: "Encrypts a payload and hides it in a carrier file",
	Long: `Encrypts a payload with the key file and hides it in a copy of the carrier.

The payload comes from --message, from --input, or from stdin. When stdin is
a terminal you are prompted for it without echo. The carrier itself is never
modified.

Examples:
  stegvault embed cover.png -k vault.key -m "meet at dawn"
  stegvault embed song.wav -k vault.key -i notes.txt -o song.stego.wav
  tar cz docs | stegvault embed report.pdf -k vault.key`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting embed command")
		carrierPath := args[0]

		// Prompting has to happen before the spinner takes the terminal.
		payload, err := readPayload(cmd)
		if err != nil {
			return failureWithoutSpinner(err)
		}
		Logger.Debugf("Payload is %d bytes", len(payload))

		spinner, cleanup := startSpinner("Hiding payload...")
		defer cleanup()

		warnKeyPermissions(spinner, embedKeyFile)

		result, err := workflows.Embed(context.Background(), workflows.EmbedOptions{
			CarrierPath: carrierPath,
			KeyPath:     embedKeyFile,
			CreateKey:   embedNewKey,
			Kind:        embedType,
			OutputPath:  embedOutput,
			Force:       embedForce,
			Payload:     payload,
		})
		if err != nil {
			return failure(spinner, err)
		}

		Logger.Infof("Embedded %d bytes with %s, key %s", result.PayloadBytes, result.Suite, result.KeyFingerprint)
		Logger.Debugf("Used %d of %d %s", result.Report.Required, result.Report.Available, result.Report.Unit)

		final := ui.Tick() + " Payload hidden in " + ui.Path.Sprint(result.OutputPath) + "\n"
		if result.KeyCreated {
			final += ui.Tick() + " Created key file " + ui.Path.Sprint(embedKeyFile) + "\n"
		}
		final += ui.Arrow() + fmt.Sprintf(" Used %d of %d %s with key %s",
			result.Report.Required, result.Report.Available, result.Report.Unit,
			ui.Highlight.Sprint(result.KeyFingerprint))
		spinner.FinalMSG = final
		return nil
	},
}

// readPayload picks the payload source: --message, --input, a hidden prompt
// on a terminal, or piped stdin.
func readPayload(cmd *cobra.Command) ([]byte, error) {
	switch {
	case cmd.Flags().Changed("message"):
		return []byte(embedMessage), nil

	case embedInputFile == "-":
		return utils.ReadAllFrom(cmd.InOrStdin())

	case embedInputFile != "":
		data, err := os.ReadFile(embedInputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file %s: %w", embedInputFile, err)
		}
		return data, nil

	case utils.IsTerminal():
		payload, err := utils.ReadHidden("Payload to hide: ")
		if err != nil {
			return nil, err
		}
		if len(payload) == 0 {
			return nil, kerrors.ErrEmptyPayload
		}
		return payload, nil
	}

	payload, err := utils.ReadStdin()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrEmptyPayload, err)
	}
	if len(payload) == 0 {
		return nil, kerrors.ErrEmptyPayload
	}
	return payload, nil
}

// failureWithoutSpinner prints a described error for failures that happen
// before a spinner exists.
func failureWithoutSpinner(err error) error {
	Logger.Errorf("%v", err)
	message, hint := ui.Describe(err)
	fmt.Println(ui.Cross() + " " + message)
	if hint != "" {
		fmt.Println(ui.Arrow() + " " + hint)
	}
	return errReported
}
