package validate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/netvalid/netvalid/pkg/parser"
	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/testbed"
	"github.com/netvalid/netvalid/pkg/util"
)

// TopologyValidator checks the cabled topology: every link in the testbed
// must appear as a CDP adjacency on the expected interface pair, and no
// adjacency outside the testbed may be present.
type TopologyValidator struct{}

// Name returns the validator name.
func (v *TopologyValidator) Name() string {
	return "topology"
}

// Validate compares the device's CDP neighbors against the testbed links.
func (v *TopologyValidator) Validate(ctx context.Context, tgt *Target) []reconcile.Result {
	device := tgt.Device.Name
	expected := tgt.Testbed.ExpectedNeighbors()[device]
	if len(expected) == 0 {
		util.WithValidator(v.Name()).Debugf("no links involving %s in testbed, skipping", device)
		return nil
	}

	neighbors, err := tgt.Ops.CDPNeighbors(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}

	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []reconcile.Result
	for _, name := range names {
		results = append(results, v.checkAdjacency(device, name, expected[name], neighbors))
	}
	results = append(results, v.checkUnexpected(device, expected, neighbors)...)
	return results
}

// checkAdjacency looks for one expected neighbor in the CDP table and
// verifies the interface pair. A neighbor can appear more than once (a
// second link, a stale adjacency); any entry matching the expected pair is
// a pass. CDP device IDs may carry a domain suffix, so hostnames match
// case-insensitively with the suffix stripped.
func (v *TopologyValidator) checkAdjacency(device, name string, want testbed.Neighbor, neighbors []parser.CDPNeighbor) reconcile.Result {
	localMatches := func(n parser.CDPNeighbor) bool {
		return reconcile.Interface(n.LocalInterface) == reconcile.Interface(want.LocalInterface)
	}

	var candidate parser.CDPNeighbor
	seen := false
	for _, n := range neighbors {
		if !hostnameMatches(name, n.Hostname()) {
			continue
		}
		if localMatches(n) && reconcile.Interface(n.PortID) == reconcile.Interface(want.RemoteInterface) {
			return reconcile.Passed(device, v.Name(), name,
				fmt.Sprintf("neighbor %s on %s connecting to %s", name, n.LocalInterface, n.PortID))
		}
		// Remember the closest miss: an entry on the right local
		// interface beats one on the wrong interface entirely.
		if !seen || (localMatches(n) && !localMatches(candidate)) {
			candidate, seen = n, true
		}
	}
	if !seen {
		return reconcile.Missing(device, v.Name(), name, "CDP neighbor")
	}
	if !localMatches(candidate) {
		return reconcile.Mismatch(device, v.Name(), name,
			"local interface", want.LocalInterface, candidate.LocalInterface)
	}
	return reconcile.Mismatch(device, v.Name(), name,
		"remote interface", want.RemoteInterface, candidate.PortID)
}

// checkUnexpected reports CDP adjacencies no testbed link covers.
func (v *TopologyValidator) checkUnexpected(device string, expected map[string]testbed.Neighbor, neighbors []parser.CDPNeighbor) []reconcile.Result {
	var results []reconcile.Result
	for _, n := range neighbors {
		hostname := n.Hostname()
		known := false
		for name := range expected {
			if hostnameMatches(name, hostname) {
				known = true
				break
			}
		}
		if !known {
			results = append(results, reconcile.Unexpected(
				device, v.Name(), hostname, "CDP neighbor",
				fmt.Sprintf("on %s connecting to %s", n.LocalInterface, n.PortID)))
		}
	}
	return results
}

// hostnameMatches compares a testbed device name to an observed CDP
// hostname, tolerating partial spellings on either side.
func hostnameMatches(expected, observed string) bool {
	e := strings.ToLower(expected)
	o := strings.ToLower(observed)
	return e == o || strings.Contains(o, e) || strings.Contains(e, o)
}
