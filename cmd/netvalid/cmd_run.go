package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/netvalid/netvalid/pkg/expect"
	"github.com/netvalid/netvalid/pkg/report"
	"github.com/netvalid/netvalid/pkg/runner"
	"github.com/netvalid/netvalid/pkg/testbed"
)

func newRunCmd() *cobra.Command {
	var (
		testbedPath string
		expectedDir string
		opts        runner.Options
		junitPath   string
		reportPath  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run validators against the testbed devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := testbed.Load(testbedPath)
			if err != nil {
				return err
			}
			exp, err := expect.LoadDir(expectedDir, tb)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reports, err := runner.New(tb, exp).Run(ctx, opts)
			if err != nil {
				return err
			}

			report.WriteConsole(os.Stdout, reports)

			gen := &report.Generator{Testbed: tb.Name, Reports: reports}
			if reportPath != "" {
				if err := gen.WriteMarkdown(reportPath); err != nil {
					return err
				}
			}
			if junitPath != "" {
				if err := gen.WriteJUnit(junitPath); err != nil {
					return err
				}
			}

			// Exit 2 = device/parse error, exit 1 = validation failure.
			if code := runner.ExitCode(reports); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&testbedPath, "testbed", "testbed.yaml", "testbed YAML file")
	cmd.Flags().StringVar(&expectedDir, "expected-dir", ".", "directory containing expected-state YAML files")
	cmd.Flags().StringSliceVar(&opts.Validators, "validator", nil, "run only the named validators")
	cmd.Flags().StringSliceVar(&opts.Devices, "device", nil, "run only against the named devices")
	cmd.Flags().StringVar(&junitPath, "junit", "", "JUnit XML output path")
	cmd.Flags().StringVar(&reportPath, "report", "", "markdown report output path")

	return cmd
}
