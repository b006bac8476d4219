package carrier

import (
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/framing"
)

// lsbPlane is an ordered sequence of carrier units whose least-significant
// bits hold payload bits.
type lsbPlane interface {
	Len() int64
	Bit(i int64) byte
	SetBit(i int64, bit byte)
}

// writeBits stores data in the plane starting at unit 0, most-significant
// bit first. The caller has already checked capacity.
func writeBits(p lsbPlane, data []byte) {
	var i int64
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			p.SetBit(i, (b>>shift)&1)
			i++
		}
	}
}

// readBytes reassembles n bytes from the plane starting at unit start.
func readBytes(p lsbPlane, start int64, n int) []byte {
	out := make([]byte, n)
	i := start
	for j := range out {
		var b byte
		for k := 0; k < 8; k++ {
			b = b<<1 | p.Bit(i)
			i++
		}
		out[j] = b
	}
	return out
}

// readFrame decodes the length prefix from the first 32 units and then reads
// exactly as many envelope bytes as it declares.
func readFrame(p lsbPlane) ([]byte, error) {
	const headerBits = framing.HeaderSize * 8

	available := p.Len()
	if available < headerBits {
		return nil, &kerrors.FrameError{Kind: kerrors.TruncatedFrame, Available: available / 8}
	}

	header := readBytes(p, 0, framing.HeaderSize)
	declared := int64(framing.DeclaredLength(header))
	bodyBytes := (available - headerBits) / 8
	if declared > bodyBytes {
		return nil, &kerrors.FrameError{
			Kind:      kerrors.IncompleteEnvelope,
			Declared:  declared,
			Available: bodyBytes,
		}
	}

	return append(header, readBytes(p, headerBits, int(declared))...), nil
}
