// Package reconcile compares expected protocol state against observed state
// and produces pass/fail verdicts. It is pure comparison logic: no device
// I/O, no retries, and no mutation of either state set.
package reconcile

import "fmt"

// Verdict classifies the outcome of a single comparison.
type Verdict string

const (
	Pass  Verdict = "PASS"
	Fail  Verdict = "FAIL"
	Error Verdict = "ERROR"
)

// Result is the verdict for one expected fact on one device.
type Result struct {
	Device  string  `json:"device"`
	Check   string  `json:"check"`
	Key     string  `json:"key,omitempty"`
	Verdict Verdict `json:"verdict"`
	Reason  string  `json:"reason"`
}

// Report aggregates all results for a device.
type Report struct {
	Device  string   `json:"device"`
	Overall Verdict  `json:"overall"`
	Results []Result `json:"results"`
}

// NewReport creates a report with overall status computed worst-wins:
// any ERROR makes the report ERROR, otherwise any FAIL makes it FAIL.
func NewReport(device string, results []Result) *Report {
	r := &Report{Device: device, Overall: Pass, Results: results}
	for _, res := range results {
		switch res.Verdict {
		case Error:
			r.Overall = Error
		case Fail:
			if r.Overall != Error {
				r.Overall = Fail
			}
		}
	}
	return r
}

// Counts returns the number of results per verdict.
func (r *Report) Counts() (pass, fail, errs int) {
	for _, res := range r.Results {
		switch res.Verdict {
		case Pass:
			pass++
		case Fail:
			fail++
		case Error:
			errs++
		}
	}
	return
}

// Passed builds a PASS result.
func Passed(device, check, key, reason string) Result {
	return Result{Device: device, Check: check, Key: key, Verdict: Pass, Reason: reason}
}

// Missing builds the FAIL result for an expected entry absent from the
// observed state.
func Missing(device, check, key, kind string) Result {
	return Result{
		Device: device, Check: check, Key: key, Verdict: Fail,
		Reason: fmt.Sprintf("expected %s %s not observed", kind, key),
	}
}

// Mismatch builds the FAIL result for an entry present with the wrong value,
// naming both values.
func Mismatch(device, check, key, field, want, got string) Result {
	return Result{
		Device: device, Check: check, Key: key, Verdict: Fail,
		Reason: fmt.Sprintf("%s %s: %s is %q, expected %q", check, key, field, got, want),
	}
}

// Unexpected builds the FAIL result for an observed entry that no
// expectation covers.
func Unexpected(device, check, key, kind, detail string) Result {
	reason := fmt.Sprintf("unexpected %s %s observed", kind, key)
	if detail != "" {
		reason += " (" + detail + ")"
	}
	return Result{Device: device, Check: check, Key: key, Verdict: Fail, Reason: reason}
}

// Failed builds a FAIL result with a free-form reason.
func Failed(device, check, key, reason string) Result {
	return Result{Device: device, Check: check, Key: key, Verdict: Fail, Reason: reason}
}

// Errored builds the ERROR result for a check that could not run, e.g. a
// connection or parse failure. Comparison failures never use this.
func Errored(device, check string, err error) Result {
	return Result{Device: device, Check: check, Verdict: Error, Reason: err.Error()}
}
