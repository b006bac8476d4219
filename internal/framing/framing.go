// Package framing serializes an envelope into the self-describing unit every
// carrier codec embeds:
//
//	[4-byte big-endian length][envelope bytes]
//
// Codecs extract a fixed-capacity region of the carrier (a whole bit-plane, a
// whole sample stream, a file trailer); the prefix tells them where the real
// data ends.
package framing

import (
	"encoding/binary"
	"math"

	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

// HeaderSize is the length of the big-endian length prefix.
const HeaderSize = 4

// Unframed is the result of decoding a frame. Remainder holds any bytes that
// followed the envelope, such as carrier padding.
type Unframed struct {
	Length    uint32
	Envelope  []byte
	Remainder []byte
}

// Frame prepends the envelope's length.
func Frame(envelope []byte) ([]byte, error) {
	if uint64(len(envelope)) > math.MaxUint32 {
		return nil, kerrors.ErrFrameTooLarge
	}
	out := make([]byte, HeaderSize+len(envelope))
	binary.BigEndian.PutUint32(out, uint32(len(envelope)))
	copy(out[HeaderSize:], envelope)
	return out, nil
}

// FramedLen is the framed size of an n-byte envelope.
func FramedLen(n int) int {
	return HeaderSize + n
}

// DeclaredLength decodes a length prefix. header must hold HeaderSize bytes.
func DeclaredLength(header []byte) uint32 {
	return binary.BigEndian.Uint32(header)
}

// Unframe decodes the frame at the start of b.
func Unframe(b []byte) (Unframed, error) {
	if len(b) < HeaderSize {
		return Unframed{}, &kerrors.FrameError{Kind: kerrors.TruncatedFrame, Available: int64(len(b))}
	}

	n := DeclaredLength(b)
	body := b[HeaderSize:]
	if uint64(n) > uint64(len(body)) {
		return Unframed{}, &kerrors.FrameError{
			Kind:      kerrors.IncompleteEnvelope,
			Declared:  int64(n),
			Available: int64(len(body)),
		}
	}

	return Unframed{
		Length:    n,
		Envelope:  body[:n],
		Remainder: body[n:],
	}, nil
}
