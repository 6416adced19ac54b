package utils

import (
	"fmt"
	"strings"

	"github.com/WorksButNotTested/binarch2/internal/colors"
)

func toChar(b byte) byte {
	if b < 32 || b > 126 {
		return '.'
	}
	return b
}

// HexDump returns a dump of data in the format of `hexdump -C`. Line offsets
// start at base and the first mark bytes are highlighted.
func HexDump(data []byte, base, mark int) string {
	if len(data) == 0 {
		return ""
	}

	offset := colors.Offset().SprintFunc()
	match := colors.Match().SprintFunc()
	zero := colors.Zero().SprintFunc()

	var sb strings.Builder
	sb.Grow((1 + (len(data)-1)/16) * 79)

	for line := 0; line < len(data); line += 16 {
		end := min(line+16, len(data))

		sb.WriteString(offset(fmt.Sprintf("%08x", base+line)))
		sb.WriteString("  ")

		for i := line; i < line+16; i++ {
			if i == line+8 {
				sb.WriteByte(' ')
			}
			if i >= end {
				sb.WriteString("   ")
				continue
			}
			hex := fmt.Sprintf("%02x", data[i])
			switch {
			case i < mark:
				hex = match(hex)
			case data[i] == 0:
				hex = zero(hex)
			}
			sb.WriteString(hex)
			sb.WriteByte(' ')
		}

		sb.WriteString(" |")
		for i := line; i < end; i++ {
			sb.WriteByte(toChar(data[i]))
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}
