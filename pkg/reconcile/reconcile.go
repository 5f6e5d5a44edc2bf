package reconcile

import (
	"fmt"
	"sort"
)

// Normalizer canonicalizes a value before comparison. Interface, OSPFState,
// and State are the normalizers used by the validators.
type Normalizer func(string) string

// CompareState compares an observed field value against the expected one
// after normalizing both sides. A nil normalizer compares verbatim.
func CompareState(device, check, key, field, want, got string, norm Normalizer) Result {
	nwant, ngot := want, got
	if norm != nil {
		nwant, ngot = norm(want), norm(got)
	}
	if nwant == ngot {
		return Passed(device, check, key, fmt.Sprintf("%s %s: %s is %q", check, key, field, ngot))
	}
	return Mismatch(device, check, key, field, want, got)
}

// CountExact checks an observed entry count against an exact expected count.
// A count mismatch is a failure in its own right, even when every
// individually expected entry matched.
func CountExact(device, check, what string, want, got int) Result {
	if want == got {
		return Passed(device, check, what, fmt.Sprintf("%d %s observed", got, what))
	}
	return Failed(device, check, what,
		fmt.Sprintf("expected %d %s, found %d", want, what, got))
}

// CountMin checks an observed entry count against a lower bound.
func CountMin(device, check, what string, min, got int) Result {
	if got >= min {
		return Passed(device, check, what, fmt.Sprintf("%d %s observed (minimum %d)", got, what, min))
	}
	return Failed(device, check, what,
		fmt.Sprintf("found %d %s, expected at least %d", got, what, min))
}

// ExtraKeys returns the observed keys not present in the expected set,
// sorted. Keys on both sides are normalized before matching.
func ExtraKeys(expected []string, actual []string, norm Normalizer) []string {
	want := make(map[string]bool, len(expected))
	for _, k := range expected {
		if norm != nil {
			k = norm(k)
		}
		want[k] = true
	}
	var extra []string
	for _, k := range actual {
		nk := k
		if norm != nil {
			nk = norm(k)
		}
		if !want[nk] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return extra
}
