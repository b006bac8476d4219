// Package configs manages stegvault's user configuration and paths.
//
// Configuration is a single TOML file, by default at
// $XDG_CONFIG_HOME/stegvault/config.toml (STEGVAULT_CONFIG overrides it):
//
//	[crypto]
//	suite = "aes-256-gcm"
//
//	[image]
//	output_format = "png"
//
//	[document]
//	marker = "%%EOF"
//	max_trailer_bytes = 100000000
//
//	[audit]
//	enabled = true
//
// A missing file, or a missing key inside it, means the default.
//
// # Settings
//
// Global paths are resolved once at startup into UserSettings. Tests replace
// UserSettings with temporary directories.
package configs
