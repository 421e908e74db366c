package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage book categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories by name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, _, err := opts.open()
				if err != nil {
					return err
				}
				defer app.Close()

				categories, err := app.Categories.ListAll(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(categories) == 0 {
					fmt.Fprintln(out, "No categories.")
					return nil
				}
				fmt.Fprintf(out, "%-5s %s\n", "ID", "Name")
				fmt.Fprintln(out, strings.Repeat("-", 30))
				for _, c := range categories {
					fmt.Fprintf(out, "%-5d %s\n", c.ID, c.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, _, err := opts.open()
				if err != nil {
					return err
				}
				defer app.Close()

				category, err := app.Categories.Add(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added category '%s' with ID %d\n", category.Name, category.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <id> <new-name>",
			Short: "Rename a category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				app, _, err := opts.open()
				if err != nil {
					return err
				}
				defer app.Close()

				if err := app.Categories.Update(cmd.Context(), id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %d to '%s'\n", id, strings.TrimSpace(args[1]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a category that has no books",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				app, _, err := opts.open()
				if err != nil {
					return err
				}
				defer app.Close()

				if err := app.Categories.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", id)
				return nil
			},
		},
	)
	return cmd
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return uint(id), nil
}
