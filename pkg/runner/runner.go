// Package runner drives a validation run: it connects to each device in
// turn, selects the platform state source, executes the requested
// validators, and collects per-device reports. Devices are visited
// sequentially so CLI output stays attributable to one device at a time.
package runner

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/netvalid/netvalid/pkg/device"
	"github.com/netvalid/netvalid/pkg/expect"
	"github.com/netvalid/netvalid/pkg/parser"
	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/session"
	"github.com/netvalid/netvalid/pkg/testbed"
	"github.com/netvalid/netvalid/pkg/util"
	"github.com/netvalid/netvalid/pkg/validate"
)

// Options selects what a run covers. Empty slices mean everything.
type Options struct {
	// Validators restricts the run to the named validators, in registry
	// order regardless of the order given here.
	Validators []string
	// Devices restricts the run to the named testbed devices.
	Devices []string
}

// Runner executes validators against the devices of one testbed.
type Runner struct {
	tb  *testbed.Testbed
	exp *expect.Set
}

// New returns a runner over a loaded testbed and expected-state set.
func New(tb *testbed.Testbed, exp *expect.Set) *Runner {
	return &Runner{tb: tb, exp: exp}
}

// Run executes the selected validators on the selected devices and returns
// one report per device, in device-name order. A device that cannot be
// reached yields a report with a single ERROR result; the run continues
// with the remaining devices. Only configuration problems (an unknown
// device or validator name) abort the run.
func (r *Runner) Run(ctx context.Context, opts Options) ([]*reconcile.Report, error) {
	validators, err := r.selectValidators(opts.Validators)
	if err != nil {
		return nil, err
	}
	devices, err := r.selectDevices(opts.Devices)
	if err != nil {
		return nil, err
	}

	reports := make([]*reconcile.Report, 0, len(devices))
	for _, name := range devices {
		reports = append(reports, r.runDevice(ctx, r.tb.Devices[name], validators))
	}
	return reports, nil
}

// runDevice connects to one device and runs every selected validator
// against it.
func (r *Runner) runDevice(ctx context.Context, dev *testbed.Device, validators []validate.Validator) *reconcile.Report {
	log := util.WithDevice(dev.Name)
	start := time.Now()

	ops, closer, err := connect(ctx, dev)
	if err != nil {
		log.Warnf("connect failed: %v", err)
		return reconcile.NewReport(dev.Name, []reconcile.Result{
			reconcile.Errored(dev.Name, "connect", err),
		})
	}
	defer closer.Close()
	log.Infof("connected in %s", time.Since(start).Round(time.Millisecond))

	tgt := &validate.Target{
		Device:   dev,
		Ops:      ops,
		Expected: r.exp,
		Testbed:  r.tb,
	}

	var results []reconcile.Result
	for _, v := range validators {
		vres := v.Validate(ctx, tgt)
		util.WithFields(map[string]interface{}{
			"device":    dev.Name,
			"validator": v.Name(),
		}).Debugf("%d results", len(vres))
		results = append(results, vres...)
	}

	report := reconcile.NewReport(dev.Name, results)
	log.Infof("validated in %s: %s", time.Since(start).Round(time.Millisecond), report.Overall)
	return report
}

// connect opens the platform-appropriate state source for a device: a
// redis client into the SONiC state DB, an SSH session with CLI parsers
// otherwise. Overridable for tests.
var connect = func(ctx context.Context, dev *testbed.Device) (parser.Ops, io.Closer, error) {
	if dev.OS == testbed.OSSONiC {
		ops, err := device.NewSonicOps(dev)
		if err != nil {
			return nil, nil, err
		}
		if err := ops.Connect(ctx); err != nil {
			ops.Close()
			return nil, nil, err
		}
		return ops, ops, nil
	}

	client, err := session.Dial(ctx, dev)
	if err != nil {
		return nil, nil, err
	}
	ops, err := parser.Lookup(dev.OS, client)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return ops, client, nil
}

// selectValidators resolves the requested validator names, keeping registry
// execution order.
func (r *Runner) selectValidators(names []string) ([]validate.Validator, error) {
	if len(names) == 0 {
		return validate.Registry(), nil
	}
	requested := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := validate.Lookup(name); err != nil {
			return nil, err
		}
		requested[name] = true
	}
	var selected []validate.Validator
	for _, v := range validate.Registry() {
		if requested[v.Name()] {
			selected = append(selected, v)
		}
	}
	return selected, nil
}

// selectDevices resolves the requested device names, sorted.
func (r *Runner) selectDevices(names []string) ([]string, error) {
	if len(names) == 0 {
		return r.tb.DeviceNames(), nil
	}
	for _, name := range names {
		if !r.tb.HasDevice(name) {
			return nil, fmt.Errorf("device %q not in testbed %s", name, r.tb.Name)
		}
	}
	selected := append([]string(nil), names...)
	sort.Strings(selected)
	return selected, nil
}

// ExitCode maps a set of reports to the process exit code: 0 when
// everything passed, 1 when any check failed, 2 when any device or check
// errored.
func ExitCode(reports []*reconcile.Report) int {
	code := 0
	for _, rep := range reports {
		switch rep.Overall {
		case reconcile.Error:
			return 2
		case reconcile.Fail:
			code = 1
		}
	}
	return code
}
