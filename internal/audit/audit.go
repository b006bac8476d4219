package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/stegvault/internal/configs"
	"github.com/PolarWolf314/stegvault/internal/utils"
	"github.com/google/uuid"
)

// TimestampFormat is RFC3339 with microseconds, always UTC.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry is one journal line.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	User      string `json:"user,omitempty"` // user@host.
	Operation string `json:"op"`

	Kind           string `json:"kind,omitempty"`            // Carrier kind.
	Input          string `json:"input,omitempty"`           // Carrier path.
	Output         string `json:"output,omitempty"`          // Written file.
	KeyFingerprint string `json:"key_fingerprint,omitempty"` // Never the key.
	Suite          string `json:"suite,omitempty"`
	PayloadBytes   int64  `json:"payload_bytes,omitempty"`
}

// NewEntry returns an entry for op with its id, timestamp and user filled in.
func NewEntry(op string) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(TimestampFormat),
		User:      utils.Identity(),
		Operation: op,
	}
}

// Log appends entry to the journal when enabled is set. Failures are
// swallowed. Callers pass the audit.enabled value of the config they loaded.
func Log(entry Entry, enabled bool) {
	if !enabled {
		return
	}
	_ = Append(LogPath(), entry)
}

// Append writes entry to the journal at path, filling in a missing id or
// timestamp.
func Append(path string, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(data, '\n'))
	return err
}

// LogPath returns the journal location for the current settings.
func LogPath() string {
	return configs.UserSettings.AuditLogPath()
}

// ReadEntries reads the journal. A missing journal has no entries.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data, skipping malformed lines.
func ParseEntries(data []byte) []Entry {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
