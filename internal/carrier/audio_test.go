package carrier

import (
	"bytes"
	"errors"
	"testing"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

var stereo16 = wavSpec{formatTag: wavFormatPCM, channels: 2, bitsPerSample: 16}

func TestAudioCapacity(t *testing.T) {
	c := NewAudio()
	available, unit, err := c.Capacity(buildWAV(stereo16, pcm16(1000)))
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if available != 1000 || unit != capacity.UnitBits {
		t.Errorf("expected 1000 bits, got %d %s", available, unit)
	}
}

func TestAudioRoundTrip(t *testing.T) {
	specs := map[string]wavSpec{
		"mono":        {formatTag: wavFormatPCM, channels: 1, bitsPerSample: 16},
		"stereo":      stereo16,
		"extensible":  {formatTag: wavFormatPCM, channels: 2, bitsPerSample: 16, extensible: true},
		"extra chunk": {formatTag: wavFormatPCM, channels: 2, bitsPerSample: 16, extraChunk: true},
	}
	framed := mustFrame(t, []byte("audio payload"))

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			c := NewAudio()
			carrier := buildWAV(spec, pcm16(800))

			out, err := c.Embed(carrier, framed)
			if err != nil {
				t.Fatalf("Embed: %v", err)
			}
			got, err := c.Extract(out)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if !bytes.Equal(got, framed) {
				t.Fatalf("extracted %x, want %x", got, framed)
			}
		})
	}
}

func TestAudioPreservesEverythingButSampleLSBs(t *testing.T) {
	c := NewAudio()
	spec := wavSpec{formatTag: wavFormatPCM, channels: 2, bitsPerSample: 16, extraChunk: true}
	carrier := buildWAV(spec, pcm16(600))
	original := append([]byte(nil), carrier...)

	out, err := c.Embed(carrier, mustFrame(t, bytes.Repeat([]byte{0x5A}, 40)))
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !bytes.Equal(carrier, original) {
		t.Fatalf("Embed mutated its input")
	}
	if len(out) != len(carrier) {
		t.Fatalf("output length %d, want %d", len(out), len(carrier))
	}

	layout, err := parseWAV(carrier)
	if err != nil {
		t.Fatalf("parseWAV: %v", err)
	}
	for i := range out {
		inData := i >= layout.dataOffset && i < layout.dataOffset+layout.dataSize
		lowByte := inData && (i-layout.dataOffset)%2 == 0
		switch {
		case lowByte:
			if out[i]&^1 != carrier[i]&^1 {
				t.Fatalf("sample byte %d changed beyond its LSB", i)
			}
		case out[i] != carrier[i]:
			t.Fatalf("byte %d outside sample LSBs changed", i)
		}
	}
}

func TestAudioRejectsUnsupportedFormats(t *testing.T) {
	tests := map[string]wavSpec{
		"8-bit":      {formatTag: wavFormatPCM, channels: 1, bitsPerSample: 8},
		"24-bit":     {formatTag: wavFormatPCM, channels: 1, bitsPerSample: 24},
		"float":      {formatTag: 0x0003, channels: 1, bitsPerSample: 32},
		"ext. float": {formatTag: 0x0003, channels: 2, bitsPerSample: 16, extensible: true},
	}

	c := NewAudio()
	for name, spec := range tests {
		carrier := buildWAV(spec, make([]byte, 512))
		if _, _, err := c.Capacity(carrier); !errors.Is(err, kerrors.ErrUnsupportedAudioFormat) {
			t.Errorf("%s Capacity: expected ErrUnsupportedAudioFormat, got %v", name, err)
		}
		if _, err := c.Embed(carrier, []byte{0, 0, 0, 0}); !errors.Is(err, kerrors.ErrUnsupportedAudioFormat) {
			t.Errorf("%s Embed: expected ErrUnsupportedAudioFormat, got %v", name, err)
		}
	}
}

func TestAudioRejectsNonWAV(t *testing.T) {
	c := NewAudio()
	for name, carrier := range map[string][]byte{
		"empty":   nil,
		"mp3ish":  []byte("ID3\x03\x00\x00\x00\x00\x00\x00"),
		"no data": buildWAV(stereo16, nil)[:36],
	} {
		if _, err := c.Extract(carrier); !errors.Is(err, kerrors.ErrUnsupportedAudioFormat) {
			t.Errorf("%s: expected ErrUnsupportedAudioFormat, got %v", name, err)
		}
	}
}

func TestAudioCapacityBoundary(t *testing.T) {
	c := NewAudio()
	framed := mustFrame(t, make([]byte, 28)) // 32 bytes, 256 bits

	exact := buildWAV(stereo16, pcm16(256))
	if _, err := c.Embed(exact, framed); err != nil {
		t.Fatalf("Embed at exact capacity: %v", err)
	}

	short := buildWAV(stereo16, pcm16(255))
	_, err := c.Embed(short, framed)
	var capErr *kerrors.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapacityError, got %v", err)
	}
	if capErr.Required != 256 || capErr.Available != 255 {
		t.Errorf("unexpected error fields %+v", capErr)
	}
}

func TestAudioExtractIncompleteEnvelope(t *testing.T) {
	c := NewAudio()
	data := make([]byte, 64*2)
	// Every sample LSB set: the length prefix decodes as 0xFFFFFFFF.
	for i := 0; i < len(data); i += 2 {
		data[i] = 1
	}
	_, err := c.Extract(buildWAV(stereo16, data))
	if !errors.Is(err, kerrors.ErrIncompleteEnvelope) {
		t.Fatalf("expected ErrIncompleteEnvelope, got %v", err)
	}
}
