package validate

import (
	"context"
	"fmt"

	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/util"
)

// MPLSValidator checks MPLS configuration and operation: LDP enabled on the
// expected interfaces, a minimum forwarding-table size, and the exact count
// of operational TE tunnels.
type MPLSValidator struct{}

// Name returns the validator name.
func (v *MPLSValidator) Name() string {
	return "mpls"
}

// Validate compares the device's MPLS state against expectations.
func (v *MPLSValidator) Validate(ctx context.Context, tgt *Target) []reconcile.Result {
	device := tgt.Device.Name
	exp := tgt.Expected.MPLS[device]
	if exp == nil {
		util.WithValidator(v.Name()).Debugf("no expectations for %s, skipping", device)
		return nil
	}

	var results []reconcile.Result

	if len(exp.EnabledInterfaces) > 0 {
		results = append(results, v.checkInterfaces(ctx, tgt, exp.EnabledInterfaces)...)
	}
	if exp.ForwardingEntriesMin > 0 {
		results = append(results, v.checkForwarding(ctx, tgt, exp.ForwardingEntriesMin)...)
	}
	if exp.TunnelCount != nil {
		results = append(results, v.checkTunnels(ctx, tgt, *exp.TunnelCount)...)
	}
	return results
}

func (v *MPLSValidator) checkInterfaces(ctx context.Context, tgt *Target, expected []string) []reconcile.Result {
	device := tgt.Device.Name
	interfaces, err := tgt.Ops.MPLSInterfaces(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}

	enabled := make(map[string]bool, len(interfaces))
	for _, intf := range interfaces {
		if intf.LDPEnabled {
			enabled[reconcile.Interface(intf.Name)] = true
		}
	}

	results := make([]reconcile.Result, 0, len(expected))
	for _, name := range expected {
		if enabled[reconcile.Interface(name)] {
			results = append(results, reconcile.Passed(
				device, v.Name(), name, fmt.Sprintf("MPLS LDP enabled on %s", name)))
		} else {
			results = append(results, reconcile.Failed(
				device, v.Name(), name, fmt.Sprintf("MPLS not enabled on expected interface %s", name)))
		}
	}
	return results
}

func (v *MPLSValidator) checkForwarding(ctx context.Context, tgt *Target, min int) []reconcile.Result {
	device := tgt.Device.Name
	entries, err := tgt.Ops.MPLSForwarding(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}
	return []reconcile.Result{reconcile.CountMin(
		device, v.Name(), "forwarding entries", min, len(entries))}
}

func (v *MPLSValidator) checkTunnels(ctx context.Context, tgt *Target, want int) []reconcile.Result {
	device := tgt.Device.Name
	tunnels, err := tgt.Ops.TETunnels(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}

	up := 0
	for _, tun := range tunnels {
		if reconcile.State(tun.OperState) == "up" {
			up++
		}
	}
	return []reconcile.Result{reconcile.CountExact(
		device, v.Name(), "active TE tunnels", want, up)}
}
