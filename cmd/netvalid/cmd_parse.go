package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/netvalid/netvalid/pkg/parser"
)

// cannedRunner feeds one captured show-output blob to the parsers instead
// of a live session.
type cannedRunner struct {
	output string
}

func (r *cannedRunner) Device() string { return "offline" }

func (r *cannedRunner) Run(ctx context.Context, cmd string) (string, error) {
	return r.output, nil
}

// parse runs one parser over captured command output and prints the result
// as JSON. Intended for debugging parsers against outputs collected in the
// field, without device access.
func newParseCmd() *cobra.Command {
	var (
		osName string
		state  string
		input  string
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse captured show-command output offline",
		Long: `Parse reads raw show-command output from a file (or stdin) and prints
the parsed state as JSON.

  netvalid parse --os iosxe --state ospf --input show-ospf.txt
  ssh core1 'show ip bgp summary' | netvalid parse --os iosxe --state bgp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}
			ops, err := parser.Lookup(osName, &cannedRunner{output: string(data)})
			if err != nil {
				return err
			}

			ctx := context.Background()
			var parsed interface{}
			switch state {
			case "ospf":
				parsed, err = ops.OSPFNeighbors(ctx)
			case "bgp":
				parsed, err = ops.BGPNeighbors(ctx)
			case "ldp":
				parsed, err = ops.LDPNeighbors(ctx)
			case "mpls-interfaces":
				parsed, err = ops.MPLSInterfaces(ctx)
			case "mpls-forwarding":
				parsed, err = ops.MPLSForwarding(ctx)
			case "te-tunnels":
				parsed, err = ops.TETunnels(ctx)
			case "cdp":
				parsed, err = ops.CDPNeighbors(ctx)
			default:
				return fmt.Errorf("unknown state %q (ospf, bgp, ldp, mpls-interfaces, mpls-forwarding, te-tunnels, cdp)", state)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(parsed)
		},
	}

	cmd.Flags().StringVar(&osName, "os", "iosxe", "device OS the output came from (iosxe, iosxr)")
	cmd.Flags().StringVar(&state, "state", "", "state type to parse")
	cmd.Flags().StringVar(&input, "input", "", "file with raw command output (default stdin)")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
