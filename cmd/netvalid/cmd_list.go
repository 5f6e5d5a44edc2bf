package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netvalid/netvalid/pkg/validate"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available validators",
		Run: func(cmd *cobra.Command, args []string) {
			for _, v := range validate.Registry() {
				fmt.Println(v.Name())
			}
		},
	}
}
