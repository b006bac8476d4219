package carrier

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/PolarWolf314/stegvault/internal/framing"
)

// noisyNRGBA builds a deterministic w×h image with varied channel values.
func noisyNRGBA(w, h int, alpha uint8) *image.NRGBA {
	r := rand.New(rand.NewSource(int64(w*1000 + h)))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r.Intn(256)),
				G: uint8(r.Intn(256)),
				B: uint8(r.Intn(256)),
				A: alpha,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

type wavSpec struct {
	formatTag     uint16
	channels      uint16
	bitsPerSample uint16
	extensible    bool
	extraChunk    bool
}

// buildWAV assembles a RIFF/WAVE file around the given raw sample bytes.
func buildWAV(spec wavSpec, data []byte) []byte {
	var buf bytes.Buffer
	le := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	fmtSize := uint32(16)
	if spec.extensible {
		fmtSize = 40
	}

	buf.WriteString("RIFF")
	le(uint32(0)) // patched below
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	le(fmtSize)
	tag := spec.formatTag
	if spec.extensible {
		tag = wavFormatExtensible
	}
	le(tag)
	le(spec.channels)
	le(uint32(44100))
	blockAlign := spec.channels * spec.bitsPerSample / 8
	le(uint32(44100) * uint32(blockAlign))
	le(blockAlign)
	le(spec.bitsPerSample)
	if spec.extensible {
		le(uint16(22))
		le(spec.bitsPerSample)
		le(uint32(3))
		le(spec.formatTag)
		buf.Write(ksDataFormatSubtype)
	}

	if spec.extraChunk {
		buf.WriteString("LIST")
		le(uint32(5))
		buf.WriteString("INFOx")
		buf.WriteByte(0) // pad to even
	}

	buf.WriteString("data")
	le(uint32(len(data)))
	buf.Write(data)

	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

func pcm16(samples int) []byte {
	r := rand.New(rand.NewSource(int64(samples)))
	data := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(r.Intn(65536)-32768)))
	}
	return data
}

func mustFrame(t *testing.T, envelope []byte) []byte {
	t.Helper()
	framed, err := framing.Frame(envelope)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	return framed
}
