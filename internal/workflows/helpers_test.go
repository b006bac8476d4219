package workflows

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/stegvault/internal/audit"
	"github.com/PolarWolf314/stegvault/internal/configs"
	"github.com/PolarWolf314/stegvault/internal/keys"
)

// testEnv isolates config, audit journal and working files in a temp dir.
type testEnv struct {
	dir      string
	settings *configs.Settings
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	originalSettings := configs.UserSettings
	configs.UserSettings = &configs.Settings{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}
	t.Cleanup(func() {
		configs.UserSettings = originalSettings
	})

	return &testEnv{dir: dir, settings: configs.UserSettings}
}

func (e *testEnv) path(elem ...string) string {
	return filepath.Join(append([]string{e.dir}, elem...)...)
}

func (e *testEnv) write(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := e.path(name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return p
}

func (e *testEnv) key(t *testing.T, name string) (string, keys.Key) {
	t.Helper()
	k, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	p := e.path(name)
	if err := keys.SaveFile(p, k); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	return p, k
}

func (e *testEnv) auditEntries(t *testing.T) []audit.Entry {
	t.Helper()
	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}
	return entries
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x ^ y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func wavBytes(samples int) []byte {
	var buf bytes.Buffer
	le := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	buf.WriteString("RIFF")
	le(uint32(36 + samples*2))
	buf.WriteString("WAVEfmt ")
	le(uint32(16))
	le(uint16(1))
	le(uint16(1))
	le(uint32(44100))
	le(uint32(88200))
	le(uint16(2))
	le(uint16(16))
	buf.WriteString("data")
	le(uint32(samples * 2))
	for i := 0; i < samples; i++ {
		le(int16(i % 2000))
	}
	return buf.Bytes()
}

const pdfText = "%PDF-1.7\n1 0 obj << /Type /Catalog >> endobj\ntrailer << /Root 1 0 R >>\n%%EOF\n"
