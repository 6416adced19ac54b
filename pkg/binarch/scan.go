package binarch

import "github.com/WorksButNotTested/binarch2/pkg/signature"

// ScanWindow applies every rule of cat to window and returns the accepted
// occurrences keyed by kind. Offsets are absolute: offset is the position of
// window[0] in the whole input.
//
// Each rule walks the window independently, left to right, resuming after
// every occurrence it finds. Rules of the same kind share one MatchSet.
func ScanWindow(cat *signature.Catalog, offset int, window []byte) Results {
	results := make(Results)
	for _, r := range cat.Rules() {
		p := r.Compiled()
		for _, start := range p.FindAll(window) {
			if !r.Accept(window[start : start+p.Len()]) {
				continue
			}
			results.Add(r.Kind, offset+start)
		}
	}
	return results
}
