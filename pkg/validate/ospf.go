package validate

import (
	"context"
	"fmt"
	"sort"

	"github.com/netvalid/netvalid/pkg/parser"
	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/util"
)

// OSPFValidator checks OSPF adjacencies: expected peers exist in the
// expected state, and per-process neighbor counts match.
type OSPFValidator struct{}

// Name returns the validator name.
func (v *OSPFValidator) Name() string {
	return "ospf"
}

// Validate compares the device's OSPF neighbor table against expectations.
func (v *OSPFValidator) Validate(ctx context.Context, tgt *Target) []reconcile.Result {
	device := tgt.Device.Name
	exp := tgt.Expected.OSPF[device]
	if exp == nil {
		util.WithValidator(v.Name()).Debugf("no expectations for %s, skipping", device)
		return nil
	}

	neighbors, err := tgt.Ops.OSPFNeighbors(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}

	byID := make(map[string]string, len(neighbors))
	for _, n := range neighbors {
		byID[n.ID] = n.State
	}

	var results []reconcile.Result
	for _, peer := range exp.Peers {
		state, found := byID[peer.PeerID]
		if !found {
			results = append(results, reconcile.Missing(device, v.Name(), peer.PeerID, "OSPF neighbor"))
			continue
		}
		results = append(results, reconcile.CompareState(
			device, v.Name(), peer.PeerID, "state", peer.State(), state, reconcile.OSPFState))
	}

	if len(exp.NeighborCounts) > 0 {
		results = append(results, v.checkCounts(device, exp.NeighborCounts, neighbors)...)
	}
	return results
}

// checkCounts compares per-process neighbor counts. IOS-XE's plain neighbor
// table carries no process column; when a single process is expected and
// the observed neighbors are untagged, all neighbors count against that
// process.
func (v *OSPFValidator) checkCounts(device string, want map[string]int, neighbors []parser.OSPFNeighbor) []reconcile.Result {
	counts := make(map[string]int)
	for _, n := range neighbors {
		counts[n.Process]++
	}
	if len(want) == 1 && len(counts) == 1 {
		if untagged, ok := counts[""]; ok {
			for process := range want {
				counts = map[string]int{process: untagged}
			}
		}
	}

	processes := make([]string, 0, len(want))
	for process := range want {
		processes = append(processes, process)
	}
	sort.Strings(processes)

	results := make([]reconcile.Result, 0, len(processes))
	for _, process := range processes {
		results = append(results, reconcile.CountExact(
			device, v.Name(), fmt.Sprintf("process %s neighbors", process),
			want[process], counts[process]))
	}
	return results
}
