// Package logger provides leveled output for stegvault commands.
//
// Verbosity is controlled by two persistent flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including debug details
//
// Without flags only critical warnings and errors reach the terminal, so the
// spinner owns the screen.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown
//	Logger.Errorf()          // Shown with --verbose or --debug
//	Logger.ErrorfAndReturn() // Logs like Errorf and returns the error
//
// Key material is never logged; commands log key fingerprints instead.
package logger
