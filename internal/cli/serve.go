package cli

import (
	"github.com/spf13/cobra"

	"github.com/ztacole/BacaDong/internal/entrypoint"
)

func newServeCommand(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			return entrypoint.Run(cfg, version)
		},
	}
}
