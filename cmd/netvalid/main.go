package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netvalid/netvalid/pkg/util"
	"github.com/netvalid/netvalid/pkg/version"
)

var (
	verboseFlag   bool
	logFormatFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "netvalid",
		Short: "Expected-state validation for network devices",
		Long: `Netvalid checks the operational state of the devices in a testbed
against operator-authored expected-state files.

  netvalid run --testbed lab.yaml --expected-dir expected/   # full validation run
  netvalid run --validator bgp --device core1                # one check, one device
  netvalid check --testbed lab.yaml --expected-dir expected/ # validate the files only
  netvalid list                                              # show available validators
  netvalid parse --os iosxe --state bgp < show-output.txt    # debug a parser offline`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verboseFlag {
				_ = util.SetLogLevel("debug")
			}
			util.SetLogOutput(cmd.ErrOrStderr())
			switch logFormatFlag {
			case "text":
			case "json":
				util.SetJSONFormat()
			default:
				return fmt.Errorf("unknown log format %q (want text or json)", logFormatFlag)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "Log format (text or json)")

	rootCmd.AddCommand(
		newRunCmd(),
		newCheckCmd(),
		newListCmd(),
		newParseCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println("netvalid " + version.Info())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
