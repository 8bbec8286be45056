package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grafana/cmdjen/internal/config"
	"github.com/grafana/cmdjen/internal/generate"
	"github.com/grafana/cmdjen/internal/scan"
)

func newRootCmd(version string) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "cmdjen [patterns...]",
		Short: "Generate a commands.yml descriptor from +commands: markers",
		Long: `cmdjen scans Go packages for type declarations whose doc comments carry
+commands: markers and renders them into a commands.yml fragment for a
plugin runtime. A pattern is a directory; a trailing /... also scans every
directory below it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: configFile,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Patterns = args
			}
			return run(cmd, cfg)
		},
	}

	defaults := config.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./"+config.ConfigFileName+".yaml if present)")
	flags.StringP("out", "o", defaults.Out, "directory to write the descriptor to")
	flags.String("file", defaults.File, "descriptor file name, relative to --out")
	flags.String("quoting", defaults.Quoting, "value quoting: compat (verbatim) or strict (YAML escaping)")
	flags.String("order", defaults.Order, "command block order: insertion or name")
	flags.Bool("check", defaults.Check, "verify the descriptor on disk is up to date instead of writing it")
	flags.String("log-level", defaults.LogLevel, "log level: debug, info, warn or error")

	return cmd
}

func run(cmd *cobra.Command, cfg config.Config) error {
	// Validated by config.Load.
	quoting, _ := cfg.QuotingMode()
	order, _ := cfg.BlockOrder()
	level, _ := cfg.Level()

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "cmdjen",
		Level:  level,
	})

	_, err := generate.Run(cmd.Context(), generate.Options{
		Discoverer: scan.New(cfg.Patterns, scan.WithLogger(logger)),
		OutDir:     cfg.Out,
		FileName:   cfg.File,
		Quoting:    quoting,
		Order:      order,
		Check:      cfg.Check,
		Logger:     logger,
	})
	return err
}

var _ generate.Discoverer = (*scan.Scanner)(nil)
