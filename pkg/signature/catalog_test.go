package signature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, len(builtin), c.Len())
	assert.Equal(t, 12, c.MaxPatternLen())
	assert.Equal(t, []Kind{
		{PowerPC, Big}, {PowerPC, Little},
		{MIPS, Big}, {MIPS, Little},
		{ARM, Big}, {ARM, Little},
		{X86, Little},
		{AArch64, Little},
	}, c.Kinds())

	for _, r := range c.Rules() {
		require.NotNil(t, r.Compiled(), r.String())
		assert.GreaterOrEqual(t, r.Compiled().Len(), MinPatternLen, r.String())
		assert.LessOrEqual(t, r.Compiled().Len(), c.MaxPatternLen(), r.String())
	}
}

func TestCatalogRulesIsACopy(t *testing.T) {
	c := Default()
	rules := c.Rules()
	rules[0].Name = "clobbered"
	assert.NotEqual(t, "clobbered", c.Rules()[0].Name)
}

func TestNewCatalogReportsEveryProblem(t *testing.T) {
	_, err := NewCatalog(
		Rule{Name: "ok", Kind: Kind{PowerPC, Big}, Pattern: "7c 08 02 a6"},
		Rule{Name: "bad-pattern", Kind: Kind{PowerPC, Big}, Pattern: "7c 08"},
		Rule{Name: "bad-kind", Kind: Kind{Arch(42), Big}, Pattern: "7c 08 02 a6"},
		Rule{Kind: Kind{PowerPC, Big}, Pattern: "7c 08 02 a6"},
		Rule{Name: "ok", Kind: Kind{PowerPC, Big}, Pattern: "4e 80 00 20"},
	)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrInvalidRule))
	assert.True(t, errors.Is(err, ErrInvalidPattern))
	assert.Contains(t, err.Error(), "bad-pattern")
	assert.Contains(t, err.Error(), "bad-kind")
	assert.Contains(t, err.Error(), "has no name")
	assert.Contains(t, err.Error(), "duplicate rule")
}

func TestNewCatalogSameNameDifferentKind(t *testing.T) {
	c, err := NewCatalog(
		Rule{Name: "mflr", Kind: Kind{PowerPC, Big}, Pattern: "7c 08 02 a6"},
		Rule{Name: "mflr", Kind: Kind{PowerPC, Little}, Pattern: "a6 02 08 7c"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 4, c.MaxPatternLen())
}

func TestMustNewCatalogPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewCatalog(Rule{Name: "broken", Kind: Kind{X86, Little}, Pattern: "zz"})
	})
}

func TestCatalogExtend(t *testing.T) {
	base := Default()

	ext, err := base.Extend(Rule{Name: "long", Kind: Kind{X86, Little}, Pattern: "cc{16}"})
	require.NoError(t, err)

	assert.Equal(t, base.Len()+1, ext.Len())
	assert.Equal(t, 16, ext.MaxPatternLen())
	assert.Equal(t, 12, base.MaxPatternLen(), "extending must not touch the original catalog")

	_, err = base.Extend(Rule{Name: "x86-endbr64", Kind: Kind{X86, Little}, Pattern: "f3 0f 1e fa"})
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestRuleAccept(t *testing.T) {
	r := Rule{Name: "plain", Kind: Kind{PowerPC, Big}, Pattern: "7c 08 02 a6"}
	assert.True(t, r.Accept([]byte{0x7c, 0x08, 0x02, 0xa6}))
	assert.False(t, r.Refined())

	r.Check = func(b []byte) bool { return false }
	assert.False(t, r.Accept([]byte{0x7c, 0x08, 0x02, 0xa6}))
	assert.True(t, r.Refined())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "PowerPC Big", Kind{PowerPC, Big}.String())
	assert.Equal(t, "x86 Little", Kind{X86, Little}.String())
	assert.Equal(t, "Arch(9) Big", Kind{Arch(9), Big}.String())

	assert.Negative(t, Kind{PowerPC, Little}.Compare(Kind{MIPS, Big}))
	assert.Negative(t, Kind{MIPS, Big}.Compare(Kind{MIPS, Little}))
	assert.Zero(t, Kind{ARM, Little}.Compare(Kind{ARM, Little}))
	assert.Positive(t, Kind{X86, Little}.Compare(Kind{ARM, Big}))

	assert.True(t, Kind{AArch64, Little}.Valid())
	assert.False(t, Kind{AArch64, Endian(2)}.Valid())
}

func TestParseArchEndian(t *testing.T) {
	for in, want := range map[string]Arch{
		"powerpc": PowerPC, "PPC": PowerPC, "mips": MIPS, "arm": ARM,
		"x86": X86, "amd64": X86, "aarch64": AArch64, "arm64": AArch64,
	} {
		got, err := ParseArch(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseArch("sparc")
	assert.Error(t, err)

	for in, want := range map[string]Endian{"big": Big, "BE": Big, "Little": Little, "le": Little} {
		got, err := ParseEndian(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err = ParseEndian("middle")
	assert.Error(t, err)
}
