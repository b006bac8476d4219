package utils

import (
	"fmt"
	"io"
	"os"
)

// ReadStdin reads all piped content from stdin. It fails when stdin is a
// terminal, since nothing was piped.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe the payload to this command)")
	}

	return ReadAllFrom(os.Stdin)
}

// ReadAllFrom reads r to EOF.
func ReadAllFrom(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
