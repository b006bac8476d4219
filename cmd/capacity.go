package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/stegvault/internal/ui"
	"github.com/PolarWolf314/stegvault/internal/utils"
	"github.com/PolarWolf314/stegvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	capacityType string
	capacitySize int
)

func init() {
	capacityCmd.Flags().StringVarP(&capacityType, "type", "t", "", "carrier type: image, audio or document (default: from extension)")
	capacityCmd.Flags().IntVarP(&capacitySize, "size", "s", 0, "check whether a payload of this many bytes fits")
}

func resetCapacityState() {
	capacityType = ""
	capacitySize = 0
}

var capacityCmd = &cobra.Command{
	Use:   "capacity <carrier>",
	Short: "Shows how large a payload a carrier can hold",
	Long: `Reports the usable payload size of a carrier after the 4-byte length prefix
and the 28 bytes of nonce and authentication tag every payload carries.

Examples:
  stegvault capacity cover.png
  stegvault capacity song.wav --size 4096`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting capacity command")

		spinner, cleanup := startSpinner("Measuring carrier...")
		defer cleanup()

		result, err := workflows.Capacity(context.Background(), workflows.CapacityOptions{
			CarrierPath:  args[0],
			Kind:         capacityType,
			PayloadBytes: capacitySize,
		})
		if err != nil {
			return failure(spinner, err)
		}
		Logger.Debugf("Carrier offers %d %s", result.Available, result.Unit)

		final := fmt.Sprintf("%s %s carrier holds up to %s %s",
			ui.Tick(), result.Kind,
			ui.Highlight.Sprintf("%d bytes", result.MaxPayload),
			ui.Muted.Sprintf("%d %s", result.Available, result.Unit))

		if r := result.Report; r != nil {
			if r.Fits {
				final += fmt.Sprintf("\n%s A %s payload fits", ui.Tick(), utils.FormatBytes(int64(capacitySize)))
			} else {
				final += fmt.Sprintf("\n%s A %s payload needs %d %s, %d available",
					ui.Cross(), utils.FormatBytes(int64(capacitySize)), r.Required, r.Unit, r.Available)
			}
		}

		spinner.FinalMSG = final
		return nil
	},
}
