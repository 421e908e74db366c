package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMembersCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Inspect library members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List members by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			members, err := app.Members.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(members) == 0 {
				fmt.Fprintln(out, "No members.")
				return nil
			}
			fmt.Fprintf(out, "%-5s %-15s %s\n", "ID", "Username", "Name")
			fmt.Fprintln(out, strings.Repeat("-", 45))
			for _, m := range members {
				fmt.Fprintf(out, "%-5d %-15s %s\n", m.ID, truncateString(m.Username, 15), m.DisplayName)
			}
			return nil
		},
	})
	return cmd
}
