package signature

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidRule is returned when a rule cannot be added to a catalog.
var ErrInvalidRule = errors.New("invalid signature rule")

// Rule is a single heuristic: a byte pattern that votes for a Kind, plus an
// optional refinement check over the matched bytes.
type Rule struct {
	Name    string
	Kind    Kind
	Pattern string
	// Check receives exactly the bytes of one pattern occurrence and may
	// reject it. A nil Check accepts every occurrence.
	Check func(match []byte) bool

	compiled *Pattern
}

// Compiled returns the rule's compiled pattern. It is nil for rules that did
// not come out of a Catalog.
func (r Rule) Compiled() *Pattern { return r.compiled }

// Refined reports whether the rule carries a refinement check.
func (r Rule) Refined() bool { return r.Check != nil }

// Accept reports whether the matched bytes pass the rule's check.
func (r Rule) Accept(match []byte) bool {
	return r.Check == nil || r.Check(match)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Kind)
}

// Catalog is an immutable, validated set of rules.
type Catalog struct {
	rules  []Rule
	maxLen int
}

// NewCatalog compiles and validates the given rules. All problems are
// reported together.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	var errs *multierror.Error

	c := &Catalog{rules: make([]Rule, 0, len(rules))}
	seen := make(map[string]bool)

	for i, r := range rules {
		if r.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("%w: rule %d has no name", ErrInvalidRule, i))
			continue
		}
		if !r.Kind.Valid() {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s: unknown kind %s", ErrInvalidRule, r.Name, r.Kind))
			continue
		}
		key := r.Name + "/" + r.Kind.String()
		if seen[key] {
			errs = multierror.Append(errs, fmt.Errorf("%w: duplicate rule %s", ErrInvalidRule, r))
			continue
		}
		seen[key] = true

		p, err := Compile(r.Pattern)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidRule, r, err))
			continue
		}
		r.compiled = p
		c.maxLen = max(c.maxLen, p.Len())
		c.rules = append(c.rules, r)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on invalid rules.
func MustNewCatalog(rules ...Rule) *Catalog {
	c, err := NewCatalog(rules...)
	if err != nil {
		panic("signature: " + err.Error())
	}
	return c
}

// Extend returns a new catalog holding c's rules followed by rules.
func (c *Catalog) Extend(rules ...Rule) (*Catalog, error) {
	all := make([]Rule, 0, len(c.rules)+len(rules))
	for _, r := range c.rules {
		r.compiled = nil
		all = append(all, r)
	}
	return NewCatalog(append(all, rules...)...)
}

// Rules returns a copy of the catalog's rules in declaration order.
func (c *Catalog) Rules() []Rule {
	return slices.Clone(c.rules)
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int { return len(c.rules) }

// MaxPatternLen returns the length of the longest pattern in the catalog.
// Scan windows overlap by this many bytes.
func (c *Catalog) MaxPatternLen() int { return c.maxLen }

// Kinds returns the distinct kinds the catalog can vote for, in Kind order.
func (c *Catalog) Kinds() []Kind {
	var kinds []Kind
	for _, r := range c.rules {
		if !slices.Contains(kinds, r.Kind) {
			kinds = append(kinds, r.Kind)
		}
	}
	slices.SortFunc(kinds, Kind.Compare)
	return kinds
}
