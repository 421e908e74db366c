// Package cli implements the bacadong command line: the HTTP server plus
// catalog maintenance commands that work directly against the database.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ztacole/BacaDong/internal/config"
	"github.com/ztacole/BacaDong/internal/entrypoint"
)

type rootOptions struct {
	envFile string
	driver  string
	dsn     string
}

// config reads the environment (and the env file) and applies flag overrides.
func (o *rootOptions) config() (*config.Config, error) {
	if err := config.LoadEnvFile(o.envFile); err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	if o.driver != "" {
		cfg.Database.Driver = strings.ToLower(o.driver)
	}
	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) open() (*entrypoint.App, *config.Config, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, err
	}
	app, err := entrypoint.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return app, cfg, nil
}

// NewRootCommand builds the command tree. Without a subcommand it serves HTTP.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCommand(opts, version)

	root := &cobra.Command{
		Use:           "bacadong",
		Short:         "BacaDong library catalog",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", "", "read variables from this file (default .env when present)")
	flags.StringVar(&opts.driver, "driver", "", "database driver: sqlite, postgres or mysql (overrides DATABASE_DRIVER)")
	flags.StringVar(&opts.dsn, "dsn", "", "database DSN or sqlite path (overrides DATABASE_DSN)")

	root.AddCommand(
		serve,
		newSeedCommand(opts),
		newCategoriesCommand(opts),
		newBooksCommand(opts),
		newMembersCommand(opts),
	)
	return root
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}
