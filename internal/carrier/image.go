package carrier

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormats lists the encodings image output can be written in.
var ImageFormats = []string{"png", "bmp", "tiff"}

// channelsPerPixel is the number of substitutable channels: R, G and B.
const channelsPerPixel = 3

// Image hides payload bits in the RGB channel LSBs of a raster image.
type Image struct {
	format string
}

// NewImage returns an image codec writing output as format. An empty format
// keeps the carrier's own encoding.
func NewImage(format string) (*Image, error) {
	if format != "" && !validImageFormat(format) {
		return nil, &kerrors.FormatError{
			Kind:   kerrors.ErrUnsupportedImageFormat,
			Detail: fmt.Sprintf("cannot write %q output", format),
		}
	}
	return &Image{format: format}, nil
}

func validImageFormat(format string) bool {
	for _, f := range ImageFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Kind reports KindImage.
func (c *Image) Kind() Kind { return KindImage }

// Capacity is pixels × 3 channel LSBs.
func (c *Image) Capacity(carrier []byte) (int64, capacity.Unit, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(carrier))
	if err != nil {
		return 0, capacity.UnitBits, unsupportedImage(err.Error())
	}
	if !acceptedModel(cfg.ColorModel) {
		return 0, capacity.UnitBits, unsupportedImage(modelName(cfg.ColorModel))
	}
	return int64(cfg.Width) * int64(cfg.Height) * channelsPerPixel, capacity.UnitBits, nil
}

// CanEmbed reports whether framedLen bytes fit the image's channel LSBs.
func (c *Image) CanEmbed(carrier []byte, framedLen int) (capacity.Report, error) {
	return checkFit(c, carrier, framedLen)
}

// Embed writes framed into the RGB LSBs of a copy of the image and encodes it.
func (c *Image) Embed(carrier, framed []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(carrier))
	if err != nil {
		return nil, unsupportedImage(err.Error())
	}

	out, plane, err := mutableCopy(img)
	if err != nil {
		return nil, err
	}

	report := capacity.Check(plane.Len(), capacity.RequiredUnits(len(framed), capacity.UnitBits), capacity.UnitBits)
	if err := report.Err(); err != nil {
		return nil, err
	}

	writeBits(plane, framed)
	return c.encode(out, format)
}

// Extract reads the frame back from the RGB LSBs.
func (c *Image) Extract(carrier []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(carrier))
	if err != nil {
		return nil, unsupportedImage(err.Error())
	}

	_, plane, err := mutableCopy(img)
	if err != nil {
		return nil, err
	}
	return readFrame(plane)
}

// outputFormat picks the encoding for a carrier decoded as inFormat. Lossy
// inputs are always re-encoded losslessly.
func (c *Image) outputFormat(inFormat string) string {
	if c.format != "" {
		return c.format
	}
	if validImageFormat(inFormat) {
		return inFormat
	}
	return "png"
}

func (c *Image) encode(img image.Image, inFormat string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format := c.outputFormat(inFormat); format {
	case "bmp":
		// BMP cannot round-trip non-premultiplied alpha.
		if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
			return nil, unsupportedImage("bmp output cannot carry an alpha channel")
		}
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// rgbPlane addresses the R, G and B bytes of a 4-byte-per-pixel image in
// row-major order, skipping alpha.
type rgbPlane struct {
	pix    []byte
	stride int
	width  int
	height int
}

func (p *rgbPlane) Len() int64 {
	return int64(p.width) * int64(p.height) * channelsPerPixel
}

func (p *rgbPlane) offset(i int64) int {
	pixel := i / channelsPerPixel
	x := int(pixel % int64(p.width))
	y := int(pixel / int64(p.width))
	return y*p.stride + x*4 + int(i%channelsPerPixel)
}

func (p *rgbPlane) Bit(i int64) byte {
	return p.pix[p.offset(i)] & 1
}

func (p *rgbPlane) SetBit(i int64, bit byte) {
	o := p.offset(i)
	p.pix[o] = p.pix[o]&^1 | bit
}

// mutableCopy clones img into an 8-bit RGBA layout whose channel bytes can be
// rewritten in place.
func mutableCopy(img image.Image) (image.Image, *rgbPlane, error) {
	b := img.Bounds()
	plane := func(pix []byte, stride int) *rgbPlane {
		return &rgbPlane{pix: pix, stride: stride, width: b.Dx(), height: b.Dy()}
	}

	switch m := img.(type) {
	case *image.NRGBA:
		c := &image.NRGBA{Pix: append([]byte(nil), m.Pix...), Stride: m.Stride, Rect: m.Rect}
		return c, plane(c.Pix, c.Stride), nil
	case *image.RGBA:
		// Premultiplied channels above alpha would be clamped on encode.
		if !m.Opaque() {
			return nil, nil, unsupportedImage("premultiplied alpha")
		}
		c := &image.RGBA{Pix: append([]byte(nil), m.Pix...), Stride: m.Stride, Rect: m.Rect}
		return c, plane(c.Pix, c.Stride), nil
	case *image.YCbCr, *image.NYCbCrA:
		c := image.NewNRGBA(b)
		draw.Draw(c, b, m, b.Min, draw.Src)
		return c, plane(c.Pix, c.Stride), nil
	default:
		return nil, nil, unsupportedImage(modelName(img.ColorModel()))
	}
}

func acceptedModel(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.YCbCrModel, color.NYCbCrAModel:
		return true
	}
	return false
}

func modelName(m color.Model) string {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return "grayscale images have fewer than 3 channels"
	case color.AlphaModel, color.Alpha16Model:
		return "alpha-only images have no colour channels"
	case color.CMYKModel:
		return "CMYK images are not RGB"
	case color.RGBA64Model, color.NRGBA64Model:
		return "16-bit channels are not supported"
	}
	if _, ok := m.(color.Palette); ok {
		return "paletted images have no per-pixel channels"
	}
	return "unsupported colour model"
}

func unsupportedImage(detail string) error {
	return &kerrors.FormatError{Kind: kerrors.ErrUnsupportedImageFormat, Detail: detail}
}
