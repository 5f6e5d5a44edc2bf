package reconcile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompareStateMatch(t *testing.T) {
	res := CompareState("router1", "ospf", "10.0.0.1", "state", "full", "FULL", OSPFState)
	if res.Verdict != Pass {
		t.Fatalf("verdict = %s, want PASS (reason: %s)", res.Verdict, res.Reason)
	}
}

func TestCompareStateMismatch(t *testing.T) {
	res := CompareState("router1", "ospf", "10.0.0.1", "state", "full", "init", OSPFState)
	if res.Verdict != Fail {
		t.Fatalf("verdict = %s, want FAIL", res.Verdict)
	}
	// The reason must name both values
	if !strings.Contains(res.Reason, "full") || !strings.Contains(res.Reason, "init") {
		t.Errorf("reason should cite both states: %s", res.Reason)
	}
}

func TestCompareStateNoNormalizer(t *testing.T) {
	res := CompareState("router1", "bgp", "10.0.0.1", "remote AS", "65001", "65001", nil)
	if res.Verdict != Pass {
		t.Errorf("verdict = %s, want PASS", res.Verdict)
	}
}

func TestMissing(t *testing.T) {
	res := Missing("router1", "ospf", "10.0.0.9", "OSPF neighbor")
	if res.Verdict != Fail {
		t.Fatalf("verdict = %s, want FAIL", res.Verdict)
	}
	if !strings.Contains(res.Reason, "not observed") {
		t.Errorf("reason should say not observed: %s", res.Reason)
	}
}

func TestCountExact(t *testing.T) {
	if res := CountExact("router1", "mpls", "active tunnels", 2, 2); res.Verdict != Pass {
		t.Errorf("equal counts: verdict = %s, want PASS", res.Verdict)
	}
	res := CountExact("router1", "mpls", "active tunnels", 2, 3)
	if res.Verdict != Fail {
		t.Fatalf("extra entry: verdict = %s, want FAIL", res.Verdict)
	}
	if !strings.Contains(res.Reason, "expected 2") || !strings.Contains(res.Reason, "found 3") {
		t.Errorf("reason should cite both counts: %s", res.Reason)
	}
}

func TestCountMin(t *testing.T) {
	if res := CountMin("router1", "mpls", "forwarding entries", 10, 25); res.Verdict != Pass {
		t.Errorf("above minimum: verdict = %s, want PASS", res.Verdict)
	}
	if res := CountMin("router1", "mpls", "forwarding entries", 10, 3); res.Verdict != Fail {
		t.Errorf("below minimum: verdict = %s, want FAIL", res.Verdict)
	}
}

func TestExtraKeys(t *testing.T) {
	expected := []string{"GigabitEthernet0/0", "GigabitEthernet0/1"}
	actual := []string{"Gi0/0", "Gi0/1", "Gi0/2"}

	got := ExtraKeys(expected, actual, Interface)
	want := []string{"Gi0/2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtraKeys diff (-want +got):\n%s", diff)
	}

	if extra := ExtraKeys(expected, actual[:2], Interface); extra != nil {
		t.Errorf("no extras expected, got %v", extra)
	}
}

func TestNewReportWorstWins(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    Verdict
	}{
		{"all pass", []Result{{Verdict: Pass}, {Verdict: Pass}}, Pass},
		{"one fail", []Result{{Verdict: Pass}, {Verdict: Fail}}, Fail},
		{"error beats fail", []Result{{Verdict: Fail}, {Verdict: Error}, {Verdict: Pass}}, Error},
		{"empty", nil, Pass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport("router1", tt.results)
			if r.Overall != tt.want {
				t.Errorf("Overall = %s, want %s", r.Overall, tt.want)
			}
		})
	}
}

func TestReportCounts(t *testing.T) {
	r := NewReport("router1", []Result{
		{Verdict: Pass}, {Verdict: Pass}, {Verdict: Fail}, {Verdict: Error},
	})
	pass, fail, errs := r.Counts()
	if pass != 2 || fail != 1 || errs != 1 {
		t.Errorf("Counts() = %d/%d/%d, want 2/1/1", pass, fail, errs)
	}
}

func TestErrored(t *testing.T) {
	res := Errored("router1", "bgp", errors.New("ssh: handshake failed"))
	if res.Verdict != Error {
		t.Fatalf("verdict = %s, want ERROR", res.Verdict)
	}
	if !strings.Contains(res.Reason, "handshake failed") {
		t.Errorf("reason should carry the underlying error: %s", res.Reason)
	}
}

// The worked example from the reconciler contract: expected peer present in
// the expected state, then flipped to a wrong state, then removed entirely.
func TestReconcileScenario(t *testing.T) {
	// Peer present, state matches
	res := CompareState("router1", "ospf", "10.0.0.1", "state", "full", "full", OSPFState)
	if res.Verdict != Pass {
		t.Errorf("matching peer: verdict = %s, want PASS", res.Verdict)
	}

	// Same peer, actual state init
	res = CompareState("router1", "ospf", "10.0.0.1", "state", "full", "init", OSPFState)
	if res.Verdict != Fail {
		t.Errorf("state mismatch: verdict = %s, want FAIL", res.Verdict)
	}

	// Peer absent from actual state
	res = Missing("router1", "ospf", "10.0.0.1", "OSPF neighbor")
	if res.Verdict != Fail || !strings.Contains(res.Reason, "not observed") {
		t.Errorf("missing peer: got %s / %s", res.Verdict, res.Reason)
	}
}
