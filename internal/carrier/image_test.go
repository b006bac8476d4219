package carrier

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"golang.org/x/image/bmp"
)

func newImageCodec(t *testing.T, format string) *Image {
	t.Helper()
	c, err := NewImage(format)
	if err != nil {
		t.Fatalf("NewImage(%q): %v", format, err)
	}
	return c
}

func TestImageCapacity(t *testing.T) {
	c := newImageCodec(t, "")
	available, unit, err := c.Capacity(encodePNG(t, noisyNRGBA(4, 4, 255)))
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if available != 48 || unit != capacity.UnitBits {
		t.Errorf("expected 48 bits, got %d %s", available, unit)
	}
}

func TestImageRoundTrip(t *testing.T) {
	framed := mustFrame(t, []byte("hidden in plain sight"))

	for _, format := range []string{"", "png", "tiff"} {
		t.Run("format="+format, func(t *testing.T) {
			c := newImageCodec(t, format)
			carrier := encodePNG(t, noisyNRGBA(16, 16, 200))

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

func TestImageRoundTripOpaqueRGBAAndBMP(t *testing.T) {
	src := noisyNRGBA(12, 12, 255)
	rgba := image.NewRGBA(src.Bounds())
	copy(rgba.Pix, src.Pix)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, rgba); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}

	c := newImageCodec(t, "")
	framed := mustFrame(t, []byte("bitmap"))
	out, err := c.Embed(buf.Bytes(), framed)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if _, format, err := image.Decode(bytes.NewReader(out)); err != nil || format != "bmp" {
		t.Fatalf("expected bmp output, got %q (%v)", format, err)
	}

	got, err := c.Extract(out)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, framed) {
		t.Fatalf("extracted %x, want %x", got, framed)
	}
}

func TestImageOnlyTouchesRGBLSBs(t *testing.T) {
	src := noisyNRGBA(10, 10, 128)
	c := newImageCodec(t, "png")

	out, err := c.Embed(encodePNG(t, src), mustFrame(t, bytes.Repeat([]byte{0xA5}, 30)))
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	got := pixOf(t, decoded)

	for i := range src.Pix {
		if i%4 == 3 {
			if src.Pix[i] != got[i] {
				t.Fatalf("alpha byte %d changed from %d to %d", i, src.Pix[i], got[i])
			}
			continue
		}
		if src.Pix[i]&^1 != got[i]&^1 {
			t.Fatalf("channel byte %d changed beyond its LSB: %d -> %d", i, src.Pix[i], got[i])
		}
	}
}

func pixOf(t *testing.T, img image.Image) []byte {
	t.Helper()
	switch m := img.(type) {
	case *image.NRGBA:
		return m.Pix
	case *image.RGBA:
		return m.Pix
	}
	t.Fatalf("unexpected image type %T", img)
	return nil
}

func TestImageRowMajorBitOrder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 14, 1))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	c := newImageCodec(t, "png")

	// Frame header 0x00000001 then a single 0x80 byte.
	out, err := c.Embed(encodePNG(t, img), []byte{0, 0, 0, 1, 0x80})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	pix := pixOf(t, decoded)

	// Bit 31 (last header bit, value 1) lands on pixel 10, channel G.
	if pix[10*4+1]&1 != 1 {
		t.Errorf("expected header LSB at pixel 10 G to be 1")
	}
	// Bit 32 (first payload bit, value 1) lands on pixel 10, channel B.
	if pix[10*4+2]&1 != 1 {
		t.Errorf("expected first payload bit at pixel 10 B to be 1")
	}
	// Bit 0 (header MSB, value 0) lands on pixel 0, channel R.
	if pix[0]&1 != 0 {
		t.Errorf("expected first header bit at pixel 0 R to be 0")
	}
}

func TestImageCapacityExceeded(t *testing.T) {
	c := newImageCodec(t, "")
	carrier := encodePNG(t, noisyNRGBA(2, 2, 255))
	framed := mustFrame(t, make([]byte, 30)) // 34 bytes, 272 bits

	report, err := c.CanEmbed(carrier, len(framed))
	if err != nil {
		t.Fatalf("CanEmbed: %v", err)
	}
	if report.Fits || report.Available != 12 || report.Required != 272 {
		t.Fatalf("unexpected report %+v", report)
	}

	out, err := c.Embed(carrier, framed)
	var capErr *kerrors.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapacityError, got %v", err)
	}
	if capErr.Available != 12 || capErr.Required != 272 {
		t.Errorf("unexpected error fields %+v", capErr)
	}
	if out != nil {
		t.Errorf("expected no output on capacity failure")
	}
}

func TestImageExactCapacity(t *testing.T) {
	// 4x4 pixels give 48 bits: a 2-byte envelope frames to exactly 6 bytes.
	c := newImageCodec(t, "")
	carrier := encodePNG(t, noisyNRGBA(4, 4, 255))

	framed := mustFrame(t, []byte{0xDE, 0xAD})
	out, err := c.Embed(carrier, framed)
	if err != nil {
		t.Fatalf("Embed at exact capacity: %v", err)
	}
	got, err := c.Extract(out)
	if err != nil || !bytes.Equal(got, framed) {
		t.Fatalf("Extract = %x, %v", got, err)
	}

	if _, err := c.Embed(carrier, mustFrame(t, []byte{0xDE, 0xAD, 0xBE})); !errors.Is(err, kerrors.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded one byte over, got %v", err)
	}
}

func TestImageRejectsNonRGB(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	paletted := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.Black, color.White})
	deep := image.NewNRGBA64(image.Rect(0, 0, 8, 8))

	c := newImageCodec(t, "")
	for name, img := range map[string]image.Image{"gray": gray, "paletted": paletted, "16-bit": deep} {
		carrier := encodePNG(t, img)
		if _, _, err := c.Capacity(carrier); !errors.Is(err, kerrors.ErrUnsupportedImageFormat) {
			t.Errorf("%s Capacity: expected ErrUnsupportedImageFormat, got %v", name, err)
		}
		if _, err := c.Embed(carrier, []byte{0, 0, 0, 0}); !errors.Is(err, kerrors.ErrUnsupportedImageFormat) {
			t.Errorf("%s Embed: expected ErrUnsupportedImageFormat, got %v", name, err)
		}
		if _, err := c.Extract(carrier); !errors.Is(err, kerrors.ErrUnsupportedImageFormat) {
			t.Errorf("%s Extract: expected ErrUnsupportedImageFormat, got %v", name, err)
		}
	}
}

func TestImageRejectsGarbage(t *testing.T) {
	c := newImageCodec(t, "")
	if _, err := c.Extract([]byte("definitely not an image")); !errors.Is(err, kerrors.ErrUnsupportedImageFormat) {
		t.Fatalf("expected ErrUnsupportedImageFormat, got %v", err)
	}
}

func TestImageBMPOutputRejectsAlpha(t *testing.T) {
	c := newImageCodec(t, "bmp")
	_, err := c.Embed(encodePNG(t, noisyNRGBA(8, 8, 100)), mustFrame(t, []byte("x")))
	if !errors.Is(err, kerrors.ErrUnsupportedImageFormat) {
		t.Fatalf("expected ErrUnsupportedImageFormat, got %v", err)
	}
}

func TestNewImageRejectsUnknownFormat(t *testing.T) {
	if _, err := NewImage("gif"); !errors.Is(err, kerrors.ErrUnsupportedImageFormat) {
		t.Fatalf("expected ErrUnsupportedImageFormat, got %v", err)
	}
}

func TestImageExtractFromTooSmallImage(t *testing.T) {
	c := newImageCodec(t, "")
	// 3x3 pixels give 27 bits, not enough for a 32-bit length prefix.
	_, err := c.Extract(encodePNG(t, noisyNRGBA(3, 3, 255)))
	if !errors.Is(err, kerrors.ErrTruncatedFrame) {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}
