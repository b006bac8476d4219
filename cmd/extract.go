package cmd

import (
	"context"
	"io"
	"os"

	"github.com/PolarWolf314/stegvault/internal/ui"
	"github.com/PolarWolf314/stegvault/internal/utils"
	"github.com/PolarWolf314/stegvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	extractKeyFile string
	extractType    string
	extractOutput  string
	extractForce   bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractKeyFile, "keyfile", "k", "", "path to the 32-byte key file")
	extractCmd.Flags().StringVarP(&extractType, "type", "t", "", "carrier type: image, audio or document (default: from extension)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write the payload to this file instead of stdout")
	extractCmd.Flags().BoolVarP(&extractForce, "force", "f", false, "replace an existing output file")
	_ = extractCmd.MarkFlagRequired("keyfile")
}

func resetExtractState() {
	extractKeyFile = ""
	extractType = ""
	extractOutput = ""
	extractForce = false
}

var extractCmd = &cobra.Command{
	Use:   "extract <carrier>",
	Short: "Recovers and verifies a payload hidden in a carrier file",
	Long: `Extracts the hidden payload from a carrier and decrypts it with the key file.

On a terminal, text payloads are printed with a trailing newline and binary
payloads are hex-dumped. When stdout is redirected the payload is written
byte for byte. Use --output to write a file.

Examples:
  stegvault extract output.png -k vault.key
  stegvault extract output.pdf -k vault.key -o docs.tar.gz`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting extract command")

		spinner, cleanup := startSpinner("Extracting payload...")
		defer cleanup()

		warnKeyPermissions(spinner, extractKeyFile)

		result, err := workflows.Extract(context.Background(), workflows.ExtractOptions{
			CarrierPath: args[0],
			KeyPath:     extractKeyFile,
			Kind:        extractType,
			OutputPath:  extractOutput,
			Force:       extractForce,
		})
		if err != nil {
			return failure(spinner, err)
		}
		Logger.Infof("Recovered %d bytes with key %s", len(result.Payload), result.KeyFingerprint)

		if result.OutputPath != "" {
			spinner.FinalMSG = ui.Tick() + " Payload written to " + ui.Path.Sprint(result.OutputPath) +
				" " + ui.Muted.Sprint(utils.FormatBytes(int64(len(result.Payload))))
			return nil
		}

		// The payload owns stdout; the spinner has to be gone first.
		cleanup()
		return writePayload(os.Stdout, result.Payload, utils.IsStdoutTerminal())
	},
}

// writePayload prints payload for a person when terminal is set and writes
// it unchanged otherwise, so redirected output matches what was embedded.
func writePayload(w io.Writer, payload []byte, terminal bool) error {
	var err error
	switch {
	case !terminal:
		_, err = w.Write(payload)
	case utils.IsPrintableText(payload):
		_, err = io.WriteString(w, ui.EnsureNewline(string(payload)))
	default:
		_, err = io.WriteString(w, utils.HexDump(payload))
	}
	if err != nil {
		return Logger.ErrorfAndReturn("failed to write payload: %w", err)
	}
	return nil
}
