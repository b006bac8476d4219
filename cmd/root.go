package cmd

import (
	"errors"
	"fmt"
	"os"

	logger "github.com/PolarWolf314/stegvault/internal/logging"
	"github.com/PolarWolf314/stegvault/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// errReported marks a failure whose message was already printed.
	errReported = errors.New("command failed")

	RootCmd = &cobra.Command{
		Use:   "stegvault",
		Short: "Hide encrypted payloads inside images, audio and PDF documents",
		Long: `stegvault encrypts a payload with a 256-bit key and hides it in a carrier file.

Images carry the payload in the least-significant bits of their RGB channels,
16-bit PCM WAV audio in the low bit of every sample, and PDF documents in a
trailer after the final %%EOF marker. Every payload is authenticated, so a
wrong key or a modified carrier is detected instead of yielding garbage.

Examples:
  # Create a key
  stegvault keygen vault.key

  # Hide a message in an image
  stegvault embed cover.png --keyfile vault.key --message "meet at dawn"

  # Recover it
  stegvault extract output.png --keyfile vault.key

  # See how much a carrier can hold
  stegvault capacity cover.wav

  # Review what was hidden, where, and with which key
  stegvault log`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner(cmd)
			return cmd.Help()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(embedCmd)
	RootCmd.AddCommand(extractCmd)
	RootCmd.AddCommand(capacityCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// printBanner writes the stegvault ASCII art shown when no subcommand is given.
func printBanner(cmd *cobra.Command) {
	banner := figure.NewColorFigure("stegvault", "alligator2", "green", true)
	art := banner.ColorString()
	if os.Getenv("NO_COLOR") != "" {
		art = banner.String()
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), art)
	fmt.Fprintln(cmd.OutOrStdout())
}

// Execute runs the root command. Errors the commands did not already report,
// such as bad flags, are printed here.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		message, _ := ui.Describe(err)
		fmt.Fprintln(os.Stderr, ui.Cross()+" "+message)
	}
	return err
}

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEmbedState()
	resetExtractState()
	resetCapacityState()
	resetKeygenState()
	resetLogState()
	resetConfigState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag so one test's flags do not
// leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
