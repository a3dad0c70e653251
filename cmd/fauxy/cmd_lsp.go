package main

import (
	"github.com/dhamidi/fauxy/fauxy/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Infof("starting language server %s", version)
			server := codebase.NewLSPServer(version)
			return server.RunStdio()
		},
	}
}
