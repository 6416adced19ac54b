package signature

var (
	mipsBE    = Kind{MIPS, Big}
	mipsLE    = Kind{MIPS, Little}
	ppcBE     = Kind{PowerPC, Big}
	ppcLE     = Kind{PowerPC, Little}
	armBE     = Kind{ARM, Big}
	armLE     = Kind{ARM, Little}
	x86LE     = Kind{X86, Little}
	aarch64LE = Kind{AArch64, Little}
)

// builtin is the default rule table. Patterns are written in memory order.
var builtin = []Rule{
	// addiu $sp, $sp, -X
	// sw    $rX, X($sp)
	{
		Name:    "mips-addiu-sw-prologue",
		Kind:    mipsBE,
		Pattern: "27 bd ff ??{5}",
		Check: func(b []byte) bool {
			return b[4] == 0xaf && b[5]&0xe0 == 0xa0
		},
	},
	{
		Name:    "mips-addiu-sw-prologue",
		Kind:    mipsLE,
		Pattern: "?? ff bd 27 ??{4}",
		Check: func(b []byte) bool {
			return b[7] == 0xaf && b[6]&0xe0 == 0xa0
		},
	},
	// jr    $ra
	// addiu $sp, $sp, X
	{Name: "mips-jr-ra-addiu", Kind: mipsBE, Pattern: "03 e0 00 08 27 bd ??{2}"},
	{Name: "mips-jr-ra-addiu", Kind: mipsLE, Pattern: "08 00 e0 03 ??{2} bd 27"},
	// addiu $sp, $sp, X
	// jr    $ra
	{Name: "mips-addiu-jr-ra", Kind: mipsBE, Pattern: "27 bd ??{2} 03 e0 00 08"},
	{Name: "mips-addiu-jr-ra", Kind: mipsLE, Pattern: "??{2} bd 27 08 00 e0 03"},

	// mflr r0
	{Name: "ppc-mflr-r0", Kind: ppcBE, Pattern: "7c 08 02 a6"},
	{Name: "ppc-mflr-r0", Kind: ppcLE, Pattern: "a6 02 08 7c"},
	// blr
	{Name: "ppc-blr", Kind: ppcBE, Pattern: "4e 80 00 20"},
	{Name: "ppc-blr", Kind: ppcLE, Pattern: "20 00 80 4e"},

	// stmfd sp!, {...}
	// followed by two unconditional (0xe) instructions
	{
		Name:    "arm-stmfd-prologue",
		Kind:    armBE,
		Pattern: "e9 2d ??{10}",
		Check: func(b []byte) bool {
			return b[4]&0xf0 == 0xe0 && b[8]&0xf0 == 0xe0
		},
	},
	{
		Name:    "arm-stmfd-prologue",
		Kind:    armLE,
		Pattern: "??{2} 2d e9 ??{8}",
		Check: func(b []byte) bool {
			return b[7]&0xf0 == 0xe0 && b[11]&0xf0 == 0xe0
		},
	},
	// mov   r0, X
	// ldmfd sp!, {...}
	{Name: "arm-mov-ldmfd-epilogue", Kind: armBE, Pattern: "e1 a0 ??{2} e8 bd ??{2}"},
	{Name: "arm-mov-ldmfd-epilogue", Kind: armLE, Pattern: "??{2} a0 e1 ??{2} bd e8"},

	// push ebp
	// mov  ebp, esp
	// sub  esp, X
	{Name: "x86-push-ebp-mov-sub", Kind: x86LE, Pattern: "55 89 e5 83 ec ??"},
	// push ebp
	// mov  ebp, esp
	// push edi
	// push esi
	{Name: "x86-push-ebp-mov-push", Kind: x86LE, Pattern: "55 89 e5 57 56 ??"},
	{Name: "x86-nop-slide", Kind: x86LE, Pattern: "90{8}"},
	{Name: "x86-endbr64", Kind: x86LE, Pattern: "f3 0f 1e fa"},
	// push rbp
	// mov  rbp, rsp
	{Name: "x86_64-push-rbp-mov", Kind: x86LE, Pattern: "55 48 89 e5"},

	// stp x29, x30, [sp, #-X]!
	{
		Name:    "aarch64-stp-fp-lr",
		Kind:    aarch64LE,
		Pattern: "fd 7b ?? a9",
		Check: func(b []byte) bool {
			return b[2]&0xc0 == 0x80
		},
	},
	{Name: "aarch64-ret", Kind: aarch64LE, Pattern: "c0 03 5f d6"},
	{Name: "aarch64-paciasp", Kind: aarch64LE, Pattern: "3f 23 03 d5"},
}

var defaultCatalog = MustNewCatalog(builtin...)

// Default returns the built-in catalog.
func Default() *Catalog { return defaultCatalog }
