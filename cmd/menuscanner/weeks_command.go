package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"MenuScanner/internal/domain"
)

func newWeeksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "List the menu weeks currently published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			weeks, err := application.Catalog().Weeks(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(weeks) == 0 {
				fmt.Fprintln(out, "No menu weeks found")
				return nil
			}
			rows := make([][]string, 0, len(weeks))
			for _, w := range weeks {
				rows = append(rows, []string{domain.FormatDate(w.Start), w.Title, w.URL})
			}
			fmt.Fprintln(out, renderTable([]string{"Week", "Title", "URL"}, rows, shouldColorize(out)))
			return nil
		},
	}
}
