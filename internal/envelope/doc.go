// Package envelope is the authenticated-encryption wrapper of stegvault.
//
// An Engine seals a plaintext under a keys.Key with one fixed AEAD suite:
//
//   - aes-256-gcm (default)
//   - chacha20-poly1305 (RFC 8439, golang.org/x/crypto)
//
// Both suites use a 32-byte key, a 12-byte nonce and a 16-byte tag, so an
// Envelope is always Overhead (28) bytes longer than its plaintext. The nonce
// is drawn fresh from a secure random source on every Encrypt call and stored
// in front of the ciphertext:
//
//	nonce (12) || ciphertext (len(plaintext)) || tag (16)
//
// Decrypt is all-or-nothing. Any tag mismatch, whether from a wrong key, a
// flipped bit or a truncated buffer, yields errors.ErrAuthenticationFailed and
// no plaintext.
package envelope
