package workflows

import (
	"context"
	"errors"
	"os"
	"testing"

	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

func embedFixture(t *testing.T, env *testEnv, payload string) (stegoPath, keyPath string) {
	t.Helper()
	carrierPath := env.write(t, "cover.wav", wavBytes(4096))
	keyPath, _ = env.key(t, "vault.key")

	result, err := Embed(context.Background(), EmbedOptions{
		CarrierPath: carrierPath,
		KeyPath:     keyPath,
		OutputPath:  env.path("stego.wav"),
		Payload:     []byte(payload),
	})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	return result.OutputPath, keyPath
}

func TestExtractWrongKey(t *testing.T) {
	env := newTestEnv(t)
	stegoPath, _ := embedFixture(t, env, "for one key only")
	otherKey, _ := env.key(t, "other.key")

	result, err := Extract(context.Background(), ExtractOptions{CarrierPath: stegoPath, KeyPath: otherKey})
	if !errors.Is(err, kerrors.ErrAuthenticationFailed) {
		t.Fatalf("Expected ErrAuthenticationFailed, got %v", err)
	}
	if result != nil {
		t.Error("No result may be returned on authentication failure")
	}
}

func TestExtractToFile(t *testing.T) {
	env := newTestEnv(t)
	stegoPath, keyPath := embedFixture(t, env, "binary\x00payload")
	outputPath := env.path("payload.bin")

	result, err := Extract(context.Background(), ExtractOptions{
		CarrierPath: stegoPath,
		KeyPath:     keyPath,
		OutputPath:  outputPath,
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.OutputPath != outputPath {
		t.Errorf("Expected output path %s, got %s", outputPath, result.OutputPath)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "binary\x00payload" {
		t.Errorf("Unexpected payload %q", data)
	}
	info, _ := os.Stat(outputPath)
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected payload permissions 0600, got %o", info.Mode().Perm())
	}
}

func TestExtractRefusesExistingOutput(t *testing.T) {
	env := newTestEnv(t)
	stegoPath, keyPath := embedFixture(t, env, "x")
	outputPath := env.write(t, "payload.txt", []byte("keep me"))

	_, err := Extract(context.Background(), ExtractOptions{CarrierPath: stegoPath, KeyPath: keyPath, OutputPath: outputPath})
	if !errors.Is(err, kerrors.ErrOutputExists) {
		t.Fatalf("Expected ErrOutputExists, got %v", err)
	}

	_, err = Extract(context.Background(), ExtractOptions{CarrierPath: stegoPath, KeyPath: keyPath, OutputPath: stegoPath, Force: true})
	if !errors.Is(err, kerrors.ErrOutputIsInput) {
		t.Fatalf("Expected ErrOutputIsInput, got %v", err)
	}
}

func TestExtractFromCleanCarrier(t *testing.T) {
	env := newTestEnv(t)
	carrierPath := env.write(t, "clean.pdf", []byte(pdfText))
	keyPath, _ := env.key(t, "vault.key")

	_, err := Extract(context.Background(), ExtractOptions{CarrierPath: carrierPath, KeyPath: keyPath})

	var frameErr *kerrors.FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != kerrors.TruncatedFrame {
		t.Fatalf("Expected a truncated frame error, got %v", err)
	}
}

func TestExtractTamperedCarrier(t *testing.T) {
	env := newTestEnv(t)
	stegoPath, keyPath := embedFixture(t, env, "do not touch")

	data, err := os.ReadFile(stegoPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Sample 100 is inside the envelope; flip its LSB.
	data[44+100*2] ^= 1
	if err := os.WriteFile(stegoPath, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Extract(context.Background(), ExtractOptions{CarrierPath: stegoPath, KeyPath: keyPath}); !errors.Is(err, kerrors.ErrAuthenticationFailed) {
		t.Fatalf("Expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestExtractAudits(t *testing.T) {
	env := newTestEnv(t)
	stegoPath, keyPath := embedFixture(t, env, "logged")

	if _, err := Extract(context.Background(), ExtractOptions{CarrierPath: stegoPath, KeyPath: keyPath}); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	entries := env.auditEntries(t)
	if len(entries) != 2 || entries[1].Operation != "extract" || entries[1].PayloadBytes != 6 {
		t.Errorf("Unexpected audit entries %+v", entries)
	}
}
