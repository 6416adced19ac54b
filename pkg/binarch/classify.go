package binarch

import "github.com/WorksButNotTested/binarch2/pkg/signature"

// Classification is the verdict for one input.
type Classification struct {
	Kind    signature.Kind
	Known   bool
	Matches int
}

func (c Classification) String() string {
	if !c.Known {
		return "Unknown"
	}
	return c.Kind.String()
}

// Classify picks the kind with the most distinct match offsets. Equal counts
// go to the lowest (Arch, Endian) pair. Without any match the result is
// unknown.
func Classify(r Results) Classification {
	var best Classification
	for k, set := range r {
		n := set.Len()
		if n == 0 {
			continue
		}
		if !best.Known || n > best.Matches || (n == best.Matches && k.Compare(best.Kind) < 0) {
			best = Classification{Kind: k, Known: true, Matches: n}
		}
	}
	return best
}
