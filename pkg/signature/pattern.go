package signature

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinPatternLen is the shortest pattern a rule may use.
	MinPatternLen = 4
	// MaxPatternLen is the longest pattern a rule may use.
	MaxPatternLen = 16
)

// ErrInvalidPattern is returned when a pattern source cannot be compiled.
var ErrInvalidPattern = errors.New("invalid pattern")

// Pattern is a compiled fixed-length byte pattern. Every position is either a
// literal byte or a wildcard that matches any byte value.
//
// Patterns are built from a hex notation where tokens are separated by
// whitespace, "??" is a wildcard and a "{n}" suffix repeats the token:
//
//	27 bd ff ??{5}
type Pattern struct {
	src   string
	value []byte
	mask  []bool // true for literal positions

	// longest run of literal bytes, used to skip ahead with bytes.Index
	anchor    []byte
	anchorOff int
}

// Compile parses a pattern in hex notation.
func Compile(src string) (*Pattern, error) {
	p := &Pattern{src: src}

	fields := strings.Fields(src)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	for _, tok := range fields {
		count := 1
		if i := strings.IndexByte(tok, '{'); i >= 0 {
			if !strings.HasSuffix(tok, "}") {
				return nil, fmt.Errorf("%w: unterminated repeat in %q", ErrInvalidPattern, tok)
			}
			n, err := strconv.Atoi(tok[i+1 : len(tok)-1])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: bad repeat count in %q", ErrInvalidPattern, tok)
			}
			count = n
			tok = tok[:i]
		}

		var (
			b   byte
			lit bool
		)
		switch {
		case tok == "??":
		case len(tok) == 2:
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: bad hex byte %q", ErrInvalidPattern, tok)
			}
			b, lit = byte(v), true
		default:
			return nil, fmt.Errorf("%w: bad token %q", ErrInvalidPattern, tok)
		}

		if len(p.value)+count > MaxPatternLen {
			return nil, fmt.Errorf("%w: %q is longer than %d bytes", ErrInvalidPattern, src, MaxPatternLen)
		}
		for range count {
			p.value = append(p.value, b)
			p.mask = append(p.mask, lit)
		}
	}

	if len(p.value) < MinPatternLen {
		return nil, fmt.Errorf("%w: %q is shorter than %d bytes", ErrInvalidPattern, src, MinPatternLen)
	}

	start, best := 0, 0
	for i := 0; i <= len(p.mask); i++ {
		if i < len(p.mask) && p.mask[i] {
			continue
		}
		if i-start > best {
			best = i - start
			p.anchorOff = start
		}
		start = i + 1
	}
	if best == 0 {
		return nil, fmt.Errorf("%w: %q has no literal bytes", ErrInvalidPattern, src)
	}
	p.anchor = p.value[p.anchorOff : p.anchorOff+best]

	return p, nil
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(`signature: Compile(` + strconv.Quote(src) + `): ` + err.Error())
	}
	return p
}

// Len returns the number of bytes the pattern spans.
func (p *Pattern) Len() int { return len(p.value) }

func (p *Pattern) String() string { return p.src }

// Match reports whether b is exactly one occurrence of the pattern.
func (p *Pattern) Match(b []byte) bool {
	if len(b) != len(p.value) {
		return false
	}
	for i, lit := range p.mask {
		if lit && b[i] != p.value[i] {
			return false
		}
	}
	return true
}

// FindAll returns the start offsets of all successive, non-overlapping
// occurrences of the pattern in b, leftmost first.
func (p *Pattern) FindAll(b []byte) []int {
	var starts []int

	n := len(p.value)
	for pos := 0; pos+n <= len(b); {
		i := bytes.Index(b[pos+p.anchorOff:], p.anchor)
		if i < 0 {
			break
		}
		start := pos + i
		if start+n > len(b) {
			break
		}
		if p.Match(b[start : start+n]) {
			starts = append(starts, start)
			pos = start + n
		} else {
			pos = start + 1
		}
	}

	return starts
}
