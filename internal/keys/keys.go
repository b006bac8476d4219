package keys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

// Size is the length of every key in bytes.
const Size = 32

// Key is a validated 32-byte symmetric key.
type Key struct {
	b [Size]byte
}

// Generate returns a fresh key read from crypto/rand.
func Generate() (Key, error) {
	return GenerateFrom(rand.Reader)
}

// GenerateFrom returns a fresh key read from r.
func GenerateFrom(r io.Reader) (Key, error) {
	var k Key
	if _, err := io.ReadFull(r, k.b[:]); err != nil {
		return Key{}, fmt.Errorf("%w: %v", kerrors.ErrRandomnessUnavailable, err)
	}
	return k, nil
}

// Validate copies b into a Key. It fails with a *errors.KeyLengthError unless
// b is exactly Size bytes.
func Validate(b []byte) (Key, error) {
	if len(b) != Size {
		return Key{}, &kerrors.KeyLengthError{Got: len(b)}
	}
	var k Key
	copy(k.b[:], b)
	return k, nil
}

// Bytes returns a copy of the key material.
func (k Key) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, k.b[:])
	return out
}

// Fingerprint identifies the key without revealing it: the first 8 bytes of
// its SHA-256 digest, hex encoded.
func (k Key) Fingerprint() string {
	sum := sha256.Sum256(k.b[:])
	return hex.EncodeToString(sum[:8])
}

// Equal reports whether two keys hold the same material.
func (k Key) Equal(other Key) bool {
	return k.b == other.b
}

// String prints the fingerprint, never the key.
func (k Key) String() string {
	return "key:" + k.Fingerprint()
}

// GoString keeps %#v from dumping the array.
func (k Key) GoString() string {
	return "keys.Key{" + k.Fingerprint() + "}"
}
