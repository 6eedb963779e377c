package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/sq/lsp"
	"github.com/dhamidi/sq/platform"
)

func newLSPCmd() *cobra.Command {
	var platformName string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := platform.Lookup(platformName)
			if err != nil {
				return err
			}
			return lsp.NewServer(g, version).RunStdio()
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "generic", "query platform the server lints for")

	return cmd
}
