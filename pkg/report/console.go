// Package report renders validation reports: colored console output for
// interactive runs, markdown for archiving, and JUnit XML for CI.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/netvalid/netvalid/pkg/reconcile"
)

var (
	passColor  = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	errorColor = color.New(color.FgYellow)
)

func colorFor(v reconcile.Verdict) *color.Color {
	switch v {
	case reconcile.Pass:
		return passColor
	case reconcile.Fail:
		return failColor
	default:
		return errorColor
	}
}

// WriteConsole renders the reports for a terminal: every non-passing result
// in full, then a per-device summary table.
func WriteConsole(w io.Writer, reports []*reconcile.Report) {
	for _, rep := range reports {
		writeDevice(w, rep)
	}
	writeSummary(w, reports)
}

func writeDevice(w io.Writer, rep *reconcile.Report) {
	fmt.Fprintf(w, "%s  %s\n", colorFor(rep.Overall).Sprintf("[%s]", rep.Overall), rep.Device)
	for _, res := range rep.Results {
		if res.Verdict == reconcile.Pass {
			continue
		}
		fmt.Fprintf(w, "  %s %s: %s\n",
			colorFor(res.Verdict).Sprint(res.Verdict), res.Check, res.Reason)
	}
}

func writeSummary(w io.Writer, reports []*reconcile.Report) {
	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"DEVICE", "RESULT", "PASS", "FAIL", "ERROR"})

	totalPass, totalFail, totalErr := 0, 0, 0
	for _, rep := range reports {
		pass, fail, errs := rep.Counts()
		totalPass += pass
		totalFail += fail
		totalErr += errs
		table.Append([]string{
			rep.Device,
			colorFor(rep.Overall).Sprint(string(rep.Overall)),
			fmt.Sprint(pass), fmt.Sprint(fail), fmt.Sprint(errs),
		})
	}
	table.Render()
	fmt.Fprintf(w, "\n%d checks: %d passed, %d failed, %d errored\n",
		totalPass+totalFail+totalErr, totalPass, totalFail, totalErr)
}
