package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/menu"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <date> <period>",
		Short: "Print the meal for a date and period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := menu.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("%w: use YYYY-MM-DD or YYYY/MM/DD", err)
			}
			period := menu.NormalizePeriod(args[1])

			application, err := ctx.application(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			entry, err := application.Catalog().Meal(cmd.Context(), date, period)
			if errors.Is(err, menu.ErrNotFound) {
				return fmt.Errorf("meal not found for %s %s", domain.FormatDate(date), period)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), entry.Meal)
			return nil
		},
	}
}
