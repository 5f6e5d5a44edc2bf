package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/netvalid/netvalid/pkg/expect"
	"github.com/netvalid/netvalid/pkg/parser"
	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/testbed"
)

const runnerTestbed = `
testbed:
  name: runner-test
devices:
  r1:
    os: iosxe
    credentials:
      username: admin
      password: lab
    connections:
      cli:
        protocol: ssh
        host: 192.0.2.1
  r2:
    os: iosxe
    credentials:
      username: admin
      password: lab
    connections:
      cli:
        protocol: ssh
        host: 192.0.2.2
`

// stubOps has no state at all; with matching expectations every lookup
// comes back empty.
type stubOps struct{}

func (stubOps) OSPFNeighbors(context.Context) ([]parser.OSPFNeighbor, error)        { return nil, nil }
func (stubOps) BGPNeighbors(context.Context) ([]parser.BGPNeighbor, error)          { return nil, nil }
func (stubOps) LDPNeighbors(context.Context) ([]parser.LDPNeighbor, error)          { return nil, nil }
func (stubOps) MPLSInterfaces(context.Context) ([]parser.MPLSInterface, error)      { return nil, nil }
func (stubOps) MPLSForwarding(context.Context) ([]parser.MPLSForwardingEntry, error) { return nil, nil }
func (stubOps) TETunnels(context.Context) ([]parser.TETunnel, error)                { return nil, nil }
func (stubOps) CDPNeighbors(context.Context) ([]parser.CDPNeighbor, error)          { return nil, nil }
func (stubOps) AAA(context.Context) (*parser.AAAState, error)                       { return nil, nil }

type nopCloser struct{ closed bool }

func (c *nopCloser) Close() error {
	c.closed = true
	return nil
}

func loadTestbed(t *testing.T) *testbed.Testbed {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testbed.yaml")
	if err := os.WriteFile(path, []byte(runnerTestbed), 0o644); err != nil {
		t.Fatal(err)
	}
	tb, err := testbed.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tb
}

func stubConnect(t *testing.T, fn func(dev *testbed.Device) (parser.Ops, io.Closer, error)) {
	t.Helper()
	orig := connect
	connect = func(ctx context.Context, dev *testbed.Device) (parser.Ops, io.Closer, error) {
		return fn(dev)
	}
	t.Cleanup(func() { connect = orig })
}

func TestRunAllDevices(t *testing.T) {
	closers := make(map[string]*nopCloser)
	stubConnect(t, func(dev *testbed.Device) (parser.Ops, io.Closer, error) {
		c := &nopCloser{}
		closers[dev.Name] = c
		return stubOps{}, c, nil
	})

	exp := &expect.Set{BGP: map[string]map[string]*expect.BGPPeer{
		"r1": {"10.0.0.2": {PeerAS: "65001"}},
	}}
	r := New(loadTestbed(t), exp)
	reports, err := r.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].Device != "r1" || reports[1].Device != "r2" {
		t.Errorf("report order = %s, %s", reports[0].Device, reports[1].Device)
	}
	// r1 expects a BGP peer the stub does not have.
	if reports[0].Overall != reconcile.Fail {
		t.Errorf("r1 overall = %s, want FAIL: %+v", reports[0].Overall, reports[0].Results)
	}
	// r2 has no expectations at all.
	if reports[1].Overall != reconcile.Pass {
		t.Errorf("r2 overall = %s, want PASS: %+v", reports[1].Overall, reports[1].Results)
	}
	for name, c := range closers {
		if !c.closed {
			t.Errorf("connection to %s not closed", name)
		}
	}
}

func TestRunConnectFailureContinues(t *testing.T) {
	stubConnect(t, func(dev *testbed.Device) (parser.Ops, io.Closer, error) {
		if dev.Name == "r1" {
			return nil, nil, errors.New("dial tcp: connection refused")
		}
		return stubOps{}, &nopCloser{}, nil
	})

	r := New(loadTestbed(t), &expect.Set{})
	reports, err := r.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if reports[0].Overall != reconcile.Error {
		t.Errorf("r1 overall = %s, want ERROR", reports[0].Overall)
	}
	if len(reports[0].Results) != 1 || reports[0].Results[0].Check != "connect" {
		t.Errorf("r1 results = %+v", reports[0].Results)
	}
	if reports[1].Overall != reconcile.Pass {
		t.Errorf("r2 overall = %s, want PASS", reports[1].Overall)
	}
}

func TestRunValidatorSelection(t *testing.T) {
	stubConnect(t, func(dev *testbed.Device) (parser.Ops, io.Closer, error) {
		return stubOps{}, &nopCloser{}, nil
	})

	// Expectations exist for BGP and OSPF, but only bgp is requested, so
	// the missing OSPF peer must not surface.
	exp := &expect.Set{
		OSPF: map[string]*expect.OSPFDevice{
			"r1": {Peers: []*expect.OSPFPeer{{PeerID: "10.0.0.9"}}},
		},
		BGP: map[string]map[string]*expect.BGPPeer{
			"r1": {"10.0.0.2": {}},
		},
	}
	r := New(loadTestbed(t), exp)
	reports, err := r.Run(context.Background(), Options{
		Validators: []string{"bgp"},
		Devices:    []string{"r1"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	for _, res := range reports[0].Results {
		if res.Check != "bgp" {
			t.Errorf("unexpected check %q in results", res.Check)
		}
	}
}

func TestRunUnknownSelection(t *testing.T) {
	r := New(loadTestbed(t), &expect.Set{})

	if _, err := r.Run(context.Background(), Options{Validators: []string{"dns"}}); err == nil {
		t.Error("unknown validator should abort the run")
	}
	if _, err := r.Run(context.Background(), Options{Devices: []string{"r9"}}); err == nil {
		t.Error("unknown device should abort the run")
	}
}

func TestExitCode(t *testing.T) {
	pass := &reconcile.Report{Overall: reconcile.Pass}
	fail := &reconcile.Report{Overall: reconcile.Fail}
	errRep := &reconcile.Report{Overall: reconcile.Error}

	tests := []struct {
		name    string
		reports []*reconcile.Report
		want    int
	}{
		{"all pass", []*reconcile.Report{pass, pass}, 0},
		{"one fail", []*reconcile.Report{pass, fail}, 1},
		{"error wins", []*reconcile.Report{fail, errRep, pass}, 2},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.reports); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
