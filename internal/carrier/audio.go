package carrier

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

const (
	wavFormatPCM        = 0x0001
	wavFormatExtensible = 0xFFFE
	bytesPerSample      = 2
)

// ksDataFormatSubtype is the tail shared by every KSDATAFORMAT_SUBTYPE GUID;
// the first two bytes carry the format tag.
var ksDataFormatSubtype = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// Audio hides payload bits in the LSBs of 16-bit PCM samples of a WAV file.
// Only the low byte of touched samples changes; headers and other chunks are
// preserved byte for byte.
type Audio struct{}

// NewAudio returns the WAV codec.
func NewAudio() *Audio { return &Audio{} }

// Kind reports KindAudio.
func (c *Audio) Kind() Kind { return KindAudio }

// Capacity is one bit per sample across all channels.
func (c *Audio) Capacity(carrier []byte) (int64, capacity.Unit, error) {
	layout, err := parseWAV(carrier)
	if err != nil {
		return 0, capacity.UnitBits, err
	}
	return layout.samples(), capacity.UnitBits, nil
}

// CanEmbed reports whether framedLen bytes fit one bit per sample.
func (c *Audio) CanEmbed(carrier []byte, framedLen int) (capacity.Report, error) {
	return checkFit(c, carrier, framedLen)
}

// Embed writes framed into the sample LSBs of a copy of the WAV file.
func (c *Audio) Embed(carrier, framed []byte) ([]byte, error) {
	layout, err := parseWAV(carrier)
	if err != nil {
		return nil, err
	}

	report := capacity.Check(layout.samples(), capacity.RequiredUnits(len(framed), capacity.UnitBits), capacity.UnitBits)
	if err := report.Err(); err != nil {
		return nil, err
	}

	out := append([]byte(nil), carrier...)
	writeBits(layout.plane(out), framed)
	return out, nil
}

// Extract reads the frame back from the sample LSBs.
func (c *Audio) Extract(carrier []byte) ([]byte, error) {
	layout, err := parseWAV(carrier)
	if err != nil {
		return nil, err
	}
	return readFrame(layout.plane(carrier))
}

// wavLayout locates the sample data inside a RIFF/WAVE file.
type wavLayout struct {
	formatTag     uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
	dataOffset    int
	dataSize      int
}

func (l wavLayout) samples() int64 {
	return int64(l.dataSize / bytesPerSample)
}

func (l wavLayout) plane(b []byte) *samplePlane {
	return &samplePlane{data: b[l.dataOffset : l.dataOffset+l.dataSize]}
}

// parseWAV walks the RIFF chunks of a canonical or extended WAVE file.
func parseWAV(b []byte) (wavLayout, error) {
	var layout wavLayout

	if len(b) < 12 || !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
		return layout, unsupportedAudio("not a RIFF/WAVE file")
	}

	haveFmt := false
	pos := 12
	for pos+8 <= len(b) {
		id := string(b[pos : pos+4])
		size := int64(binary.LittleEndian.Uint32(b[pos+4 : pos+8]))
		body := pos + 8
		end := int64(body) + size

		switch id {
		case "fmt ":
			if size < 16 || end > int64(len(b)) {
				return layout, unsupportedAudio("malformed fmt chunk")
			}
			fmtChunk := b[body:end]
			layout.formatTag = binary.LittleEndian.Uint16(fmtChunk[0:2])
			layout.channels = binary.LittleEndian.Uint16(fmtChunk[2:4])
			layout.sampleRate = binary.LittleEndian.Uint32(fmtChunk[4:8])
			layout.bitsPerSample = binary.LittleEndian.Uint16(fmtChunk[14:16])
			if layout.formatTag == wavFormatExtensible {
				if size < 40 {
					return layout, unsupportedAudio("malformed extensible fmt chunk")
				}
				subFormat := fmtChunk[24:40]
				if binary.LittleEndian.Uint16(subFormat[0:2]) != wavFormatPCM || !bytes.Equal(subFormat[2:], ksDataFormatSubtype) {
					return layout, unsupportedAudio("extensible sub-format is not PCM")
				}
				layout.formatTag = wavFormatPCM
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return layout, unsupportedAudio("data chunk precedes fmt chunk")
			}
			if err := checkPCM16(layout); err != nil {
				return layout, err
			}
			// Streaming writers leave the size at 0xFFFFFFFF; use what is present.
			if end > int64(len(b)) {
				end = int64(len(b))
			}
			layout.dataOffset = body
			layout.dataSize = int(end) - body
			return layout, nil
		}

		// Chunks are word aligned.
		next := end + size%2
		if next > int64(len(b)) {
			break
		}
		pos = int(next)
	}

	if !haveFmt {
		return layout, unsupportedAudio("missing fmt chunk")
	}
	return layout, unsupportedAudio("missing data chunk")
}

func checkPCM16(l wavLayout) error {
	if l.formatTag != wavFormatPCM {
		return unsupportedAudio(fmt.Sprintf("format tag 0x%04X is not PCM", l.formatTag))
	}
	if l.bitsPerSample != 16 {
		return unsupportedAudio(fmt.Sprintf("%d-bit samples, only 16-bit is supported", l.bitsPerSample))
	}
	return nil
}

// samplePlane addresses the low byte of each little-endian int16 sample.
type samplePlane struct {
	data []byte
}

func (p *samplePlane) Len() int64 {
	return int64(len(p.data) / bytesPerSample)
}

func (p *samplePlane) Bit(i int64) byte {
	return p.data[i*bytesPerSample] & 1
}

func (p *samplePlane) SetBit(i int64, bit byte) {
	o := i * bytesPerSample
	p.data[o] = p.data[o]&^1 | bit
}

func unsupportedAudio(detail string) error {
	return &kerrors.FormatError{Kind: kerrors.ErrUnsupportedAudioFormat, Detail: detail}
}
