// Package audit keeps a local journal of stegvault operations.
//
// Every embed, extract and keygen appends one JSON object per line to:
//
//	$XDG_DATA_HOME/stegvault/audit.jsonl
//
// Each entry carries a UUID, a UTC timestamp, the operation, the carrier kind,
// the input and output paths, the key fingerprint and the payload size. Key
// material and payload bytes are never written.
//
// # Usage
//
//	entry := audit.NewEntry("embed")
//	entry.Kind = "image"
//	entry.KeyFingerprint = key.Fingerprint()
//	audit.Log(entry, config.Audit.Enabled)
//
// # Failure Handling
//
// Logging is best-effort: an unwritable journal never fails the operation
// being recorded. Setting audit.enabled = false in the config turns it off;
// workflows pass that flag to every Log call.
//
// ReadEntries parses the journal back, skipping malformed lines left by
// partial writes.
package audit
