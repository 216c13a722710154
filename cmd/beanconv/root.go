package main

import (
	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/beanutils/internal/config"
	"github.com/go-leo/beanutils/internal/logger"
	"github.com/go-leo/beanutils/locale"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "beanconv",
		Short: "Convert and format values",
		Long: `beanconv converts strings to Go types and formats numbers and dates
with locale aware patterns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", ".", "directory holding beanconv.yaml and .env")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "overrides log.level")

	cmd.AddCommand(newConvertCmd(), newFormatCmd(), newTypesCmd())
	return cmd
}

// setup installs the logger and the package level registries described by
// the configuration.
func setup(opts *rootOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logg)

	defaultLocale, err := locale.ParseLocale(cfg.Locale.Default)
	if err != nil {
		return err
	}
	locale.SetDefault(locale.NewRegistry(
		locale.WithDefaultLocale(defaultLocale),
		locale.ApplyLocalized(cfg.Locale.Localized),
	))

	registry := convert.NewRegistry(
		convert.ThrowException(cfg.Convert.Throw),
		convert.DefaultZero(cfg.Convert.DefaultZero),
		convert.DefaultArraySize(cfg.Convert.ArraySize),
	)
	if len(cfg.Convert.DatePatterns) > 0 {
		opt, err := locale.DateFormatOption(defaultLocale, cfg.Convert.DatePatterns...)
		if err != nil {
			return err
		}
		registry.Register(timeType, convert.NewDateTimeConverter(opt))
	}
	convert.SetDefault(registry)

	zap.L().Debug("beanconv: configured",
		zap.Stringer("locale", defaultLocale),
		zap.Bool("throw", cfg.Convert.Throw),
		zap.Strings("date_patterns", cfg.Convert.DatePatterns))
	return nil
}
