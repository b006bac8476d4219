// Package ui renders user-facing text for the stegvault CLI.
//
// Formatters colour content by meaning when the terminal supports it and
// fall back to plain decorations otherwise:
//
//	ui.Code.Sprint("stegvault keygen vault.key") // `backticks` without colour
//	ui.Path.Sprint("cover.png")
//	ui.Highlight.Sprint("3f2a9c01d4e5b6a7")     // 'quotes' without colour
//	ui.Muted.Sprint("bits")                    // (parentheses) without colour
//
// Colours are disabled when NO_COLOR is set or fatih/color decides the
// terminal cannot render them.
//
// Describe is the single place where errors from the core packages become
// sentences a user reads; nothing below cmd/ formats user text.
package ui
