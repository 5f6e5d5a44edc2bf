// Package validate implements the per-protocol validators. Each validator
// fetches one slice of operational state through parser.Ops, reconciles it
// against the loaded expectations, and returns verdicts. Validators hold no
// state and never mutate expectations or observed state.
package validate

import (
	"context"
	"fmt"
	"sort"

	"github.com/netvalid/netvalid/pkg/expect"
	"github.com/netvalid/netvalid/pkg/parser"
	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/testbed"
)

// Target bundles everything a validator needs for one device.
type Target struct {
	Device   *testbed.Device
	Ops      parser.Ops
	Expected *expect.Set
	Testbed  *testbed.Testbed
}

// Validator checks one protocol on one device. Validate returns nil when
// the device has no expectations for the protocol.
type Validator interface {
	Name() string
	Validate(ctx context.Context, tgt *Target) []reconcile.Result
}

// Registry returns all validators in their execution order.
func Registry() []Validator {
	return []Validator{
		&TopologyValidator{},
		&OSPFValidator{},
		&BGPValidator{},
		&LDPValidator{},
		&MPLSValidator{},
		&AAAValidator{},
	}
}

// Names returns the sorted validator names.
func Names() []string {
	all := Registry()
	names := make([]string, 0, len(all))
	for _, v := range all {
		names = append(names, v.Name())
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named validator.
func Lookup(name string) (Validator, error) {
	for _, v := range Registry() {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unknown validator %q (available: %v)", name, Names())
}
