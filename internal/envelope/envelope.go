package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/keys"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceSize is the nonce length shared by both suites.
	NonceSize = 12

	// TagSize is the authentication tag length shared by both suites.
	TagSize = 16

	// Overhead is how many bytes an envelope adds to its plaintext.
	Overhead = NonceSize + TagSize
)

// Suite names an AEAD construction.
type Suite string

const (
	// AES256GCM is AES-256 in Galois/Counter Mode, the default.
	AES256GCM Suite = "aes-256-gcm"

	// ChaCha20Poly1305 is the RFC 8439 construction.
	ChaCha20Poly1305 Suite = "chacha20-poly1305"
)

// Suites lists every supported suite, default first.
var Suites = []Suite{AES256GCM, ChaCha20Poly1305}

// ParseSuite resolves a configured suite name. The empty string selects AES256GCM.
func ParseSuite(name string) (Suite, error) {
	if name == "" {
		return AES256GCM, nil
	}
	for _, s := range Suites {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown cipher suite %q", name)
}

// Envelope is one authenticated-encryption output. Ciphertext carries the tag
// in its last TagSize bytes.
type Envelope struct {
	Nonce      [NonceSize]byte
	Ciphertext []byte
}

// Bytes serializes the envelope as nonce || ciphertext || tag.
func (e Envelope) Bytes() []byte {
	out := make([]byte, 0, NonceSize+len(e.Ciphertext))
	out = append(out, e.Nonce[:]...)
	return append(out, e.Ciphertext...)
}

// Len is the serialized length.
func (e Envelope) Len() int {
	return NonceSize + len(e.Ciphertext)
}

// ParseEnvelope splits b into nonce and ciphertext. A buffer too short to
// hold a nonce and a tag cannot authenticate, so it is reported as
// ErrAuthenticationFailed rather than as a distinct parse error.
func ParseEnvelope(b []byte) (Envelope, error) {
	if len(b) < Overhead {
		return Envelope{}, kerrors.ErrAuthenticationFailed
	}
	var e Envelope
	copy(e.Nonce[:], b[:NonceSize])
	e.Ciphertext = append([]byte(nil), b[NonceSize:]...)
	return e, nil
}

// SealedLen returns the envelope length for a plaintext of n bytes.
func SealedLen(n int) int {
	return n + Overhead
}

// Engine encrypts and decrypts envelopes with a single suite. It holds no key
// and no per-call state, so one Engine may serve concurrent callers.
type Engine struct {
	suite Suite
	rand  io.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom replaces crypto/rand as the nonce source.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// New returns an Engine for suite.
func New(suite Suite, opts ...Option) (*Engine, error) {
	if _, err := ParseSuite(string(suite)); err != nil {
		return nil, err
	}
	e := &Engine{suite: suite, rand: rand.Reader}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Suite reports the engine's AEAD construction.
func (e *Engine) Suite() Suite {
	return e.suite
}

func (e *Engine) aead(key keys.Key) (cipher.AEAD, error) {
	raw := key.Bytes()
	switch e.suite {
	case ChaCha20Poly1305:
		return chacha20poly1305.New(raw)
	default:
		block, err := aes.NewCipher(raw)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	}
}

// Encrypt seals plaintext under key with a fresh random nonce.
func (e *Engine) Encrypt(key keys.Key, plaintext []byte) (Envelope, error) {
	aead, err := e.aead(key)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to initialise %s: %w", e.suite, err)
	}

	var env Envelope
	if _, err := io.ReadFull(e.rand, env.Nonce[:]); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", kerrors.ErrRandomnessUnavailable, err)
	}

	env.Ciphertext = aead.Seal(nil, env.Nonce[:], plaintext, nil)
	return env, nil
}

// Decrypt opens env under key. Every verification failure is reported as
// ErrAuthenticationFailed and no plaintext is returned.
func (e *Engine) Decrypt(key keys.Key, env Envelope) ([]byte, error) {
	if len(env.Ciphertext) < TagSize {
		return nil, kerrors.ErrAuthenticationFailed
	}

	aead, err := e.aead(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise %s: %w", e.suite, err)
	}

	plaintext, err := aead.Open(nil, env.Nonce[:], env.Ciphertext, nil)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
