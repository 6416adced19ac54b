package utils

import (
	"fmt"
	"strings"

	"github.com/apex/log/handlers/cli"
)

var normalPadding = cli.Default.Padding

// Indent calls f with the cli handler padding raised by level steps.
func Indent(f func(s string), level int) func(string) {
	return func(s string) {
		cli.Default.Padding = normalPadding * level
		f(s)
		cli.Default.Padding = normalPadding
	}
}

// Percent formats part as a share of total.
func Percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(total))
}

// JoinOffsets renders offsets as hex. When total is larger than the number
// of offsets the remainder is reported as elided.
func JoinOffsets(offsets []int, total int) string {
	parts := make([]string, 0, len(offsets)+1)
	for _, off := range offsets {
		parts = append(parts, fmt.Sprintf("%#x", off))
	}
	if total > len(offsets) {
		parts = append(parts, fmt.Sprintf("... (%d more)", total-len(offsets)))
	}
	return strings.Join(parts, ", ")
}
