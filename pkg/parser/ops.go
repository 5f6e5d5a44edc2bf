package parser

import (
	"context"
	"fmt"

	"github.com/netvalid/netvalid/pkg/testbed"
)

// CommandRunner executes a CLI command on a device and returns raw output.
// session.Client satisfies this; tests substitute canned output.
type CommandRunner interface {
	Device() string
	Run(ctx context.Context, cmd string) (string, error)
}

// Ops is the typed fetch surface the validators consume. Each method issues
// the platform-appropriate show command and parses its output. Platforms
// that cannot provide a given state return util.ErrNotSupported.
type Ops interface {
	OSPFNeighbors(ctx context.Context) ([]OSPFNeighbor, error)
	BGPNeighbors(ctx context.Context) ([]BGPNeighbor, error)
	LDPNeighbors(ctx context.Context) ([]LDPNeighbor, error)
	MPLSInterfaces(ctx context.Context) ([]MPLSInterface, error)
	MPLSForwarding(ctx context.Context) ([]MPLSForwardingEntry, error)
	TETunnels(ctx context.Context) ([]TETunnel, error)
	CDPNeighbors(ctx context.Context) ([]CDPNeighbor, error)
	AAA(ctx context.Context) (*AAAState, error)
}

// Lookup returns the Ops implementation for a device OS bound to the given
// command runner.
func Lookup(os string, runner CommandRunner) (Ops, error) {
	switch os {
	case testbed.OSIOSXE:
		return &iosxeOps{runner}, nil
	case testbed.OSIOSXR:
		return &iosxrOps{runner}, nil
	default:
		return nil, fmt.Errorf("no parser for os %q", os)
	}
}
