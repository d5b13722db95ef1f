// Package cli implements the apnslint command line: checking payload files
// against the aps schema and printing their canonical encoding.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/takimoto3/apnscodec/internal/logger"
	"github.com/takimoto3/apnscodec/payload"
)

// EnvPrefix prefixes the environment variables that override flags, for
// example APNSLINT_STRICT=true.
const EnvPrefix = "APNSLINT"

// ErrInvalid is returned when at least one checked payload has
// error-severity violations.
var ErrInvalid = errors.New("invalid payload")

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings shared by all commands.
type Config struct {
	Strict                bool   `mapstructure:"strict"`
	LiveActivityRelevance bool   `mapstructure:"live-activity-relevance"`
	LogLevel              string `mapstructure:"log-level"`
	Format                string `mapstructure:"format"`
}

// Options returns the validator options selected by c.
func (c *Config) Options() []payload.Option {
	var opts []payload.Option
	if c.Strict {
		opts = append(opts, payload.WithStrict())
	}
	if c.LiveActivityRelevance {
		opts = append(opts, payload.WithLiveActivityRelevance())
	}
	return opts
}

type app struct {
	v      *viper.Viper
	cfg    Config
	logger *slog.Logger
}

// RootCommand creates and returns the root command.
func RootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "apnslint",
		Short:         "Validate and format APNs notification payloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	setupFlags(rootCmd)
	if err := a.v.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("error binding flags: %v", err))
	}

	rootCmd.AddCommand(checkCommand(a), fmtCommand(a))
	return rootCmd
}

func setupFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().Bool("strict", false, "Report every warning as an error")
	rootCmd.PersistentFlags().Bool("live-activity-relevance", false, "Accept any relevance-score in payloads carrying content-state")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("format", "f", FormatText, "Output format: text, json")
}

// load resolves the configuration from flags, environment and config file,
// in that order of precedence.
func (a *app) load(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	switch a.cfg.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unsupported format: %s", a.cfg.Format)
	}

	a.logger = logger.New(a.cfg.LogLevel, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded",
		"strict", a.cfg.Strict,
		"live_activity_relevance", a.cfg.LiveActivityRelevance,
		"format", a.cfg.Format)
	return nil
}
