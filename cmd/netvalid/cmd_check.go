package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netvalid/netvalid/pkg/expect"
	"github.com/netvalid/netvalid/pkg/testbed"
)

// check loads and validates the input files without touching any device.
// Useful as a pre-commit or CI gate on the expected-state files.
func newCheckCmd() *cobra.Command {
	var (
		testbedPath string
		expectedDir string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the testbed and expected-state files without connecting",
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := testbed.Load(testbedPath)
			if err != nil {
				return err
			}
			exp, err := expect.LoadDir(expectedDir, tb)
			if err != nil {
				return err
			}

			fmt.Printf("testbed %s: %d devices, %d links\n",
				tb.Name, len(tb.Devices), len(tb.Links()))
			for _, name := range tb.DeviceNames() {
				dev := tb.Devices[name]
				fmt.Printf("  %-16s %-7s %s\n", name, dev.OS, dev.Conn().Addr())
			}
			fmt.Printf("expected state: %d OSPF, %d BGP, %d LDP, %d MPLS, %d AAA device entries\n",
				len(exp.OSPF), len(exp.BGP), len(exp.LDP), len(exp.MPLS), len(exp.AAA))
			return nil
		},
	}

	cmd.Flags().StringVar(&testbedPath, "testbed", "testbed.yaml", "testbed YAML file")
	cmd.Flags().StringVar(&expectedDir, "expected-dir", ".", "directory containing expected-state YAML files")

	return cmd
}
