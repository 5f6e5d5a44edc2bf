package validate

import (
	"context"

	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/util"
)

// LDPValidator checks LDP sessions: expected peers exist in the expected
// session state. A peer matches by its bare IP or its full LDP identifier.
type LDPValidator struct{}

// Name returns the validator name.
func (v *LDPValidator) Name() string {
	return "ldp"
}

// Validate compares the device's LDP neighbor list against expectations.
func (v *LDPValidator) Validate(ctx context.Context, tgt *Target) []reconcile.Result {
	device := tgt.Device.Name
	expected := tgt.Expected.LDP[device]
	if len(expected) == 0 {
		util.WithValidator(v.Name()).Debugf("no expectations for %s, skipping", device)
		return nil
	}

	neighbors, err := tgt.Ops.LDPNeighbors(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}

	var results []reconcile.Result
	for _, peer := range expected {
		wantID := util.StripLabelSpace(peer.PeerID)
		state, found := "", false
		for _, n := range neighbors {
			if n.PeerID == wantID || n.LDPID == peer.PeerID {
				state, found = n.State, true
				break
			}
		}
		if !found {
			results = append(results, reconcile.Missing(device, v.Name(), peer.PeerID, "LDP peer"))
			continue
		}
		results = append(results, reconcile.CompareState(
			device, v.Name(), peer.PeerID, "state", peer.State(), state, reconcile.State))
	}
	return results
}
