// Package workflows provides high-level orchestration for stegvault commands.
//
// Workflows coordinate the config, keys, carrier, stego and audit packages
// to implement one user-facing command each, independent of CLI concerns
// like flag parsing, spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package is a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading configuration
//   - Resolving the carrier type and codec
//   - Output-path safety: never overwrite the carrier, never replace an
//     existing file unless forced, never leave a partial file behind
//   - Recording audit entries
//
// # Available Workflows
//
//   - Embed: hides an encrypted payload in a carrier file
//   - Extract: recovers and authenticates a hidden payload
//   - Capacity: reports how much payload a carrier can hold
//   - Keygen: writes a new random key file
//   - Log: reads and filters the audit journal
//
// # Error Handling
//
// Workflows return errors from the internal/errors package, wrapped with
// context. Use errors.Is and errors.As to inspect them:
//
//	result, err := workflows.Embed(ctx, opts)
//	if errors.Is(err, kerrors.ErrCapacityExceeded) {
//	    // Suggest a larger carrier
//	}
//
// # Context Usage
//
// Every workflow takes a context.Context first. Cancellation is honoured
// before any file is written.
package workflows
