package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/PolarWolf314/stegvault/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner starts a spinner with message unless verbose or debug output
// is on. The returned cleanup stops it and prints spinner.FinalMSG with a
// trailing newline; it is safe to call more than once.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if quiet {
				log.SetOutput(os.Stderr)
			}

			finalMsg := ""
			if s.FinalMSG != "" {
				finalMsg = ui.EnsureNewline(s.FinalMSG)
				s.FinalMSG = ""
			}

			if quiet {
				s.Stop()
			}

			if finalMsg != "" {
				fmt.Print(finalMsg)
			}
		})
	}

	return s, cleanup
}

// failure renders err through ui.Describe into the spinner's final message
// and returns errReported so the process exits non-zero without printing
// the error twice.
func failure(s *spinner.Spinner, err error) error {
	Logger.Errorf("%v", err)
	message, hint := ui.Describe(err)
	final := ui.Cross() + " " + message
	if hint != "" {
		final += "\n" + ui.Arrow() + " " + hint
	}
	s.FinalMSG = final
	return errReported
}

// warnKeyPermissions warns when a key file is readable by others.
func warnKeyPermissions(s *spinner.Spinner, path string) {
	info, err := os.Stat(path)
	if err != nil || info.Mode().Perm()&0077 == 0 {
		return
	}
	s.Stop()
	Logger.WarnfAlways("Key file %s has permissive permissions (%o), consider running 'chmod 600 %s'",
		path, info.Mode().Perm(), path)
	if !verbose && !debug {
		s.Start()
	}
}
