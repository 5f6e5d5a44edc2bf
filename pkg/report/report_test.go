package report

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/netvalid/netvalid/pkg/reconcile"
)

func sampleReports() []*reconcile.Report {
	return []*reconcile.Report{
		reconcile.NewReport("r1", []reconcile.Result{
			reconcile.Passed("r1", "bgp", "10.0.0.2", "bgp 10.0.0.2: session state is \"established\""),
			reconcile.Missing("r1", "ospf", "10.0.0.9", "OSPF neighbor"),
		}),
		reconcile.NewReport("r2", []reconcile.Result{
			reconcile.Errored("r2", "connect", os.ErrDeadlineExceeded),
		}),
	}
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	WriteConsole(&buf, sampleReports())
	out := buf.String()

	for _, want := range []string{
		"[FAIL]  r1",
		"[ERROR]  r2",
		"expected OSPF neighbor 10.0.0.9 not observed",
		"3 checks: 1 passed, 1 failed, 1 errored",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
	// Passing results are summarized, not listed.
	if strings.Contains(out, "10.0.0.2") {
		t.Errorf("console output should not list passing results:\n%s", out)
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.md")
	g := &Generator{
		Testbed: "mpls-core",
		Reports: sampleReports(),
		Now:     func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) },
	}
	if err := g.WriteMarkdown(path); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"# Validation Report — mpls-core — 2026-03-14 09:30:00",
		"| r1 | FAIL | 1 | 1 | 0 |",
		"| r2 | ERROR | 0 | 0 | 1 |",
		"## Failures",
		"**r1** ospf 10.0.0.9",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "junit.xml")
	g := &Generator{Testbed: "mpls-core", Reports: sampleReports()}
	if err := g.WriteJUnit(path); err != nil {
		t.Fatalf("WriteJUnit: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var suites junitTestSuites
	if err := xml.Unmarshal(data, &suites); err != nil {
		t.Fatalf("invalid JUnit XML: %v", err)
	}

	if len(suites.Suites) != 2 {
		t.Fatalf("got %d suites, want 2", len(suites.Suites))
	}
	r1 := suites.Suites[0]
	if r1.Name != "r1" || r1.Tests != 2 || r1.Failures != 1 || r1.Errors != 0 {
		t.Errorf("r1 suite = %+v", r1)
	}
	r2 := suites.Suites[1]
	if r2.Errors != 1 {
		t.Errorf("r2 suite = %+v", r2)
	}
	if r1.Cases[1].Failure == nil || !strings.Contains(r1.Cases[1].Failure.Message, "10.0.0.9") {
		t.Errorf("r1 failing case = %+v", r1.Cases[1])
	}
}
