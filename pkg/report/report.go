package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/netvalid/netvalid/pkg/reconcile"
)

// DateTimeFormat is the timestamp format used in report headings.
const DateTimeFormat = "2006-01-02 15:04:05"

// Generator produces archivable reports from a finished run.
type Generator struct {
	Testbed string
	Reports []*reconcile.Report

	// Now is the report timestamp source. Overridable for tests.
	Now func() time.Time
}

func (g *Generator) timestamp() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// WriteMarkdown writes a markdown report to the given path.
func (g *Generator) WriteMarkdown(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# Validation Report — %s — %s\n\n", g.Testbed, g.timestamp().Format(DateTimeFormat))

	fmt.Fprintln(f, "| Device | Result | Pass | Fail | Error |")
	fmt.Fprintln(f, "|--------|--------|------|------|-------|")
	for _, rep := range g.Reports {
		pass, fail, errs := rep.Counts()
		fmt.Fprintf(f, "| %s | %s | %d | %d | %d |\n",
			rep.Device, rep.Overall, pass, fail, errs)
	}

	wroteHeading := false
	for _, rep := range g.Reports {
		for _, res := range rep.Results {
			if res.Verdict == reconcile.Pass {
				continue
			}
			if !wroteHeading {
				fmt.Fprintf(f, "\n## Failures\n\n")
				wroteHeading = true
			}
			fmt.Fprintf(f, "- **%s** %s %s: %s\n", rep.Device, res.Check, res.Key, res.Reason)
		}
	}

	return nil
}

// WriteJUnit writes a JUnit XML report for CI integration. Each device maps
// to a test suite and each check result to a test case.
func (g *Generator) WriteJUnit(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	suites := junitTestSuites{}
	for _, rep := range g.Reports {
		suite := junitTestSuite{Name: rep.Device}
		for _, res := range rep.Results {
			suite.Tests++
			tc := junitTestCase{
				Name:      caseName(res),
				ClassName: rep.Device,
			}
			switch res.Verdict {
			case reconcile.Fail:
				suite.Failures++
				tc.Failure = &junitFailure{Message: res.Reason, Type: res.Check}
			case reconcile.Error:
				suite.Errors++
				tc.Error = &junitError{Message: res.Reason, Type: res.Check}
			}
			suite.Cases = append(suite.Cases, tc)
		}
		suites.Suites = append(suites.Suites, suite)
	}

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0o644)
}

func caseName(res reconcile.Result) string {
	if res.Key == "" {
		return res.Check
	}
	return res.Check + " " + res.Key
}

// JUnit XML types

type junitTestSuites struct {
	XMLName xml.Name         `xml:"testsuites"`
	Suites  []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Error     *junitError   `xml:"error,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

type junitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}
