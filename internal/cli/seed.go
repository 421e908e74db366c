package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ztacole/BacaDong/internal/demo"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty catalog with sample books",
		Long: "Creates sample categories, books, chapters and reader history.\n" +
			"A catalog that already holds books is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := demo.Seed(cmd.Context(), app.DB.DB)
			if err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}

			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprintln(out, "Catalog already has books, nothing seeded.")
				return nil
			}
			fmt.Fprintf(out, "Seeded %d categories, %d books, %d chapters and %d views.\n",
				result.Categories, result.Books, result.Chapters, result.Views)
			return nil
		},
	}
}
