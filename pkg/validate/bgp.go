package validate

import (
	"context"
	"sort"

	"github.com/netvalid/netvalid/pkg/parser"
	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/util"
)

// BGPValidator checks BGP sessions: expected peers exist with the expected
// session state and remote AS, and no unexpected peers are present.
type BGPValidator struct{}

// Name returns the validator name.
func (v *BGPValidator) Name() string {
	return "bgp"
}

// Validate compares the device's BGP summary against expectations.
func (v *BGPValidator) Validate(ctx context.Context, tgt *Target) []reconcile.Result {
	device := tgt.Device.Name
	expected := tgt.Expected.BGP[device]
	if len(expected) == 0 {
		util.WithValidator(v.Name()).Debugf("no expectations for %s, skipping", device)
		return nil
	}

	neighbors, err := tgt.Ops.BGPNeighbors(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}

	byIP := make(map[string]parser.BGPNeighbor, len(neighbors))
	for _, n := range neighbors {
		byIP[n.IP] = n
	}

	ips := make([]string, 0, len(expected))
	for ip := range expected {
		ips = append(ips, ip)
	}
	sort.Strings(ips)

	var results []reconcile.Result
	for _, ip := range ips {
		peer := expected[ip]
		actual, found := byIP[ip]
		if !found {
			results = append(results, reconcile.Missing(device, v.Name(), ip, "BGP peer"))
			continue
		}
		results = append(results, reconcile.CompareState(
			device, v.Name(), ip, "session state", peer.State(), actual.State, reconcile.State))
		if peer.PeerAS != "" {
			results = append(results, reconcile.CompareState(
				device, v.Name(), ip, "remote AS", peer.PeerAS, actual.RemoteAS, nil))
		}
	}

	// Peers observed but not expected are failures of their own, even when
	// every expected peer matched.
	actualIPs := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		actualIPs = append(actualIPs, n.IP)
	}
	for _, ip := range reconcile.ExtraKeys(ips, actualIPs, nil) {
		results = append(results, reconcile.Unexpected(
			device, v.Name(), ip, "BGP peer", "state "+byIP[ip].State))
	}
	return results
}
