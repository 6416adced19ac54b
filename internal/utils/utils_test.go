package utils

import (
	"testing"

	"github.com/fatih/color"
)

func TestHexDump(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()
	color.NoColor = true

	tests := []struct {
		name string
		data []byte
		base int
		want string
	}{
		{
			name: "empty",
			data: nil,
			want: "",
		},
		{
			name: "full line",
			data: []byte("ABCDEFGHIJKLMNOP"),
			want: "00000000  41 42 43 44 45 46 47 48  49 4a 4b 4c 4d 4e 4f 50  |ABCDEFGHIJKLMNOP|\n",
		},
		{
			name: "partial line with base",
			data: []byte{0x7c, 0x08, 0x02, 0xa6, 0x00},
			base: 0xc8,
			want: "000000c8  7c 08 02 a6 00                                    ||....|\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexDump(tt.data, tt.base, 4); got != tt.want {
				t.Errorf("HexDump() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        string
	}{
		{0, 0, "0.0%"},
		{5, 5, "100.0%"},
		{1, 3, "33.3%"},
		{7, 10, "70.0%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %q, want %q", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestJoinOffsets(t *testing.T) {
	offsets := []int{0xc8, 0xcc, 0xd0}

	if got, want := JoinOffsets(offsets, 3), "0xc8, 0xcc, 0xd0"; got != want {
		t.Errorf("JoinOffsets() = %q, want %q", got, want)
	}
	if got, want := JoinOffsets(offsets[:2], 3), "0xc8, 0xcc, ... (1 more)"; got != want {
		t.Errorf("JoinOffsets() = %q, want %q", got, want)
	}
	if got := JoinOffsets(nil, 0); got != "" {
		t.Errorf("JoinOffsets(nil) = %q, want empty", got)
	}
}
