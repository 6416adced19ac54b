// Package colors provides the terminal palette of binarch.
//
// Colors are disabled when stdout is not a terminal (piped or redirected to a
// file); fatih/color detects that on its own. Init overrides the detection
// from the --color flag.
package colors

import "github.com/fatih/color"

// Init allows overriding the auto-detected color setting. A nil forceColor
// keeps whatever was detected.
func Init(forceColor *bool) {
	if forceColor != nil {
		color.NoColor = !*forceColor
	}
}

// Enabled returns true if colors are currently enabled.
func Enabled() bool {
	return !color.NoColor
}

// Verdict is used for a known classification.
func Verdict() *color.Color { return color.New(color.Bold, color.FgHiGreen) }

// Unknown is used when a file could not be classified.
func Unknown() *color.Color { return color.New(color.Bold, color.FgHiYellow) }

// Label is used for field names in plain output.
func Label() *color.Color { return color.New(color.Bold) }

// Detail is used for secondary numbers such as shares and sizes.
func Detail() *color.Color { return color.New(color.Faint) }

// Offset is used for addresses in offset lists and hex dumps.
func Offset() *color.Color { return color.New(color.Italic, color.Faint) }

// Match highlights the bytes of a signature occurrence.
func Match() *color.Color { return color.New(color.Bold, color.FgHiCyan) }

// Zero dims zero bytes and unprintable characters in hex dumps.
func Zero() *color.Color { return color.New(color.Faint, color.FgHiBlue) }
