package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jurand/config"
	"github.com/dhamidi/jurand/lsp"
)

func newLSPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server on standard input and output.

Formatting a document removes the imports and annotations selected with
-n, -p, -a and --config from it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.Build(opts.configOptions(nil))
			if err != nil {
				return &exitError{code: exitUsage, err: err}
			}
			server := lsp.NewServer(params, version)
			return server.RunStdio()
		},
	}
}
