package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"MenuScanner/internal/domain"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var periodFilter string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the menu index once and print every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			snap, err := application.Catalog().Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			var rows [][]string
			for _, entry := range snap.Index.Entries() {
				if periodFilter != "" && !strings.EqualFold(string(entry.Period), periodFilter) {
					continue
				}
				rows = append(rows, []string{
					domain.FormatDate(entry.Date),
					entry.Date.Weekday().String()[:3],
					string(entry.Period),
					entry.Meal,
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No menu entries found")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Date", "Day", "Period", "Meal"}, rows, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&periodFilter, "period", "p", "", "Only show one period")
	return cmd
}
