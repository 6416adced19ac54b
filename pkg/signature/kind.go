package signature

//go:generate stringer -type=Arch -linecomment -output arch_string.go
//go:generate stringer -type=Endian -output endian_string.go

import (
	"cmp"
	"fmt"
	"strings"
)

// Arch is a CPU architecture a signature can vote for.
// The ordinal doubles as the classifier's tie-break order.
type Arch uint8

const (
	PowerPC Arch = iota // PowerPC
	MIPS                // MIPS
	ARM                 // ARM
	X86                 // x86
	AArch64             // AArch64
	numArch
)

// Endian is the byte order an instruction stream is stored in.
type Endian uint8

const (
	Big Endian = iota
	Little
	numEndian
)

// Valid reports whether a is one of the known architectures.
func (a Arch) Valid() bool { return a < numArch }

// Valid reports whether e is one of the known byte orders.
func (e Endian) Valid() bool { return e < numEndian }

// ParseArch converts a (case-insensitive) architecture name into an Arch.
func ParseArch(s string) (Arch, error) {
	for a := range numArch {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	switch strings.ToLower(s) {
	case "ppc":
		return PowerPC, nil
	case "i386", "x86_64", "amd64":
		return X86, nil
	case "arm64":
		return AArch64, nil
	}
	return 0, fmt.Errorf("unknown architecture %q", s)
}

// ParseEndian converts "big"/"little" (or "be"/"le") into an Endian.
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(s) {
	case "big", "be":
		return Big, nil
	case "little", "le":
		return Little, nil
	}
	return 0, fmt.Errorf("unknown endianness %q", s)
}

// Kind is the unit of classification: an architecture in a byte order.
type Kind struct {
	Arch   Arch
	Endian Endian
}

// Compare orders kinds by architecture and then by byte order.
func (k Kind) Compare(o Kind) int {
	if c := cmp.Compare(k.Arch, o.Arch); c != 0 {
		return c
	}
	return cmp.Compare(k.Endian, o.Endian)
}

// Valid reports whether both halves of the kind are known values.
func (k Kind) Valid() bool {
	return k.Arch.Valid() && k.Endian.Valid()
}

func (k Kind) String() string {
	return fmt.Sprintf("%s %s", k.Arch, k.Endian)
}
