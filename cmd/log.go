package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/stegvault/internal/audit"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/ui"
	"github.com/PolarWolf314/stegvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit       int
	logReverse     bool
	logOperation   string
	logKind        string
	logFingerprint string
	logSince       string
	logUntil       string
	logOneline     bool
	logJSON        bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated: embed,extract,keygen)")
	logCmd.Flags().StringVarP(&logKind, "type", "t", "", "filter by carrier type: image, audio or document")
	logCmd.Flags().StringVar(&logFingerprint, "key", "", "filter by key fingerprint prefix")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

func resetLogState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logKind = ""
	logFingerprint = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit journal",
	Long: `Displays the journal of embed, extract and keygen operations.

Entries show who ran what, on which carrier, and the fingerprint of the key
used. Keys and payloads are never journaled.

Examples:
  stegvault log                          # Full journal
  stegvault log -n 10                    # Last 10 entries
  stegvault log --reverse                # Most recent first
  stegvault log --operation embed        # Only embeds
  stegvault log --type audio             # Only WAV carriers
  stegvault log --key 3f9a               # One key's history
  stegvault log --since 2026-01-01       # Filter by date
  stegvault log --json                   # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit journal...")
	defer cleanup()

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Limit:       logLimit,
		Reverse:     logReverse,
		Operations:  logOperation,
		Kind:        logKind,
		Fingerprint: logFingerprint,
		Since:       logSince,
		Until:       logUntil,
	})
	if err != nil {
		if errors.Is(err, kerrors.ErrJournalNotFound) {
			message, hint := ui.Describe(err)
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " " + message + "\n" + ui.Arrow() + " " + hint
			return nil
		}
		return failure(spinner, err)
	}

	Logger.Debugf("Parsed %d entries from audit journal", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	// Entries own stdout.
	cleanup()

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit journal entries found.")
		} else {
			fmt.Println("No audit journal entries found matching the filters.")
		}
		return nil
	}

	switch {
	case logJSON:
		return outputLogJSON(result.Entries)
	case logOneline:
		outputLogOneline(result.Entries)
	default:
		outputLogDefault(result.Entries)
	}
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s %s %s\n", workflows.FormatDate(e.Timestamp), e.User, e.Operation, workflows.FormatDetailsOneline(e))
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%-19s  %-25s  %-8s  %s\n",
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
	}
}
