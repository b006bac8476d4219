// Package keys produces and validates the 32-byte symmetric keys used by the
// envelope engine.
//
// A Key is an immutable value passed explicitly into every encryption call;
// nothing in stegvault keeps a process-wide key. Key material is never
// formatted: Key.String returns a fingerprint, so a key that ends up in a log
// line or an error message leaks nothing useful.
//
// Key files are raw 32-byte files written with 0600 permissions. They are a
// convenience for the command-line workflows and not part of the key contract.
package keys
