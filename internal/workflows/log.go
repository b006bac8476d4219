package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/stegvault/internal/audit"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/utils"
)

// dateLayout is the format of --since and --until.
const dateLayout = "2006-01-02"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest.
	Reverse bool

	// Operations filters by operation, comma-separated: embed,extract,keygen.
	Operations string

	// Kind filters by carrier kind: image, audio or document.
	Kind string

	// Fingerprint filters by key fingerprint prefix.
	Fingerprint string

	// Since and Until bound the entry date, inclusive, as YYYY-MM-DD.
	Since string
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter counts every readable journal line.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit journal.
//
// Returns ErrJournalNotFound if nothing has been journaled yet.
// Returns ErrInvalidDateFormat if Since or Until is not YYYY-MM-DD.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	since, err := parseDay(opts.Since, "--since")
	if err != nil {
		return nil, err
	}
	until, err := parseDay(opts.Until, "--until")
	if err != nil {
		return nil, err
	}

	if !utils.FileExists(audit.LogPath()) {
		return nil, kerrors.ErrJournalNotFound
	}
	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit journal: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	var ops map[string]bool
	if opts.Operations != "" {
		ops = make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
	}

	var filtered []audit.Entry
	for _, e := range entries {
		if ops != nil && !ops[strings.ToLower(e.Operation)] {
			continue
		}
		if opts.Kind != "" && !strings.EqualFold(e.Kind, opts.Kind) {
			continue
		}
		if opts.Fingerprint != "" && !strings.HasPrefix(e.KeyFingerprint, strings.ToLower(opts.Fingerprint)) {
			continue
		}
		if !since.IsZero() || !until.IsZero() {
			t, ok := parseTimestamp(e.Timestamp)
			if !ok {
				continue
			}
			if !since.IsZero() && t.Before(since) {
				continue
			}
			// Until covers the whole day.
			if !until.IsZero() && !t.Before(until.Add(24*time.Hour)) {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit keeps the most recent entries in either order.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func parseDay(value, flag string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s date %q, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat, flag, value)
	}
	return t, nil
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDate renders a journal timestamp as YYYY-MM-DD.
func FormatDate(ts string) string {
	if t, ok := parseTimestamp(ts); ok {
		return t.Format(dateLayout)
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// FormatDateTime renders a journal timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	if t, ok := parseTimestamp(ts); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	if len(ts) >= 19 {
		return ts[:19]
	}
	return ts
}

// FormatDetails describes an entry for the default log view.
func FormatDetails(e audit.Entry) string {
	var parts []string
	switch e.Operation {
	case "embed":
		parts = append(parts, e.Kind, e.Input+" -> "+e.Output, utils.FormatBytes(e.PayloadBytes))
	case "extract":
		source := e.Input
		if e.Output != "" {
			source += " -> " + e.Output
		}
		parts = append(parts, e.Kind, source, utils.FormatBytes(e.PayloadBytes))
	case "keygen":
		parts = append(parts, e.Output)
	}
	if e.KeyFingerprint != "" {
		parts = append(parts, "key "+e.KeyFingerprint)
	}
	return strings.Join(nonEmpty(parts), ", ")
}

// FormatDetailsOneline describes an entry for the --oneline view.
func FormatDetailsOneline(e audit.Entry) string {
	var parts []string
	switch e.Operation {
	case "embed", "extract":
		parts = append(parts, e.Kind, utils.FormatBytes(e.PayloadBytes))
	case "keygen":
		parts = append(parts, e.Output)
	}
	if fp := e.KeyFingerprint; fp != "" {
		if len(fp) > 8 {
			fp = fp[:8]
		}
		parts = append(parts, fp)
	}
	return strings.Join(nonEmpty(parts), " ")
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
