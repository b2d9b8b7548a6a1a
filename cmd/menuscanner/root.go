package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"MenuScanner/internal/app"
	"MenuScanner/internal/config"
	"MenuScanner/internal/logging"
)

type commandContext struct {
	configFlag *string
	cfg        *config.Config
}

func (c *commandContext) config() config.Config {
	if c.cfg == nil {
		var cfg config.Config
		if c.configFlag != nil && *c.configFlag != "" {
			cfg = config.LoadFile(*c.configFlag)
		} else {
			cfg = config.Load()
		}
		c.cfg = &cfg
	}
	return *c.cfg
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	cfg := c.config()
	return logging.NewWriter(w, cfg.Logging.Level, cfg.Logging.Format)
}

// application builds the wired app; callers must Close it.
func (c *commandContext) application(ctx context.Context, logs io.Writer) (*app.Application, error) {
	return app.New(ctx, c.config(), c.logger(logs))
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "menuscanner",
		Short:         "Weekly catering menu scanner and lookup service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default $MENU_SCANNER_CONFIG)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newIndexCommand(ctx))
	rootCmd.AddCommand(newLookupCommand(ctx))
	rootCmd.AddCommand(newWeeksCommand(ctx))

	return rootCmd
}
