package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/nlweb-api/internal/app"
	"github.com/vovakirdan/nlweb-api/internal/config"
	"github.com/vovakirdan/nlweb-api/internal/core"
	applog "github.com/vovakirdan/nlweb-api/internal/log"
)

type rootOptions struct {
	configPath string
	logLevel   string
	port       int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "nlweb-api",
		Short:         "Chat API answering questions about David's profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.IntVar(&opts.port, "port", 0, "HTTP listen port (overrides PORT)")

	cmd.AddCommand(newConfigCmd(opts), newAskCmd())
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, logger).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>...",
		Short: "Print the canned answer for a message without starting the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if core.IsBlank(message) {
				return errors.New("message cannot be empty")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), core.NewResponder().Respond(message))
			return err
		},
	}
}

// loadConfig resolves configuration: defaults < file < env (.env included) < flags.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, *zerolog.Logger, error) {
	bootLogger := applog.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		bootLogger.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg, _, err := config.Load(bootLogger, opts.configPath)
	if err != nil {
		return cfg, nil, err
	}

	var overrides config.Config
	if cmd.Flags().Changed("port") {
		overrides.Port = opts.port
	}
	overrides.LogLevel = opts.logLevel
	cfg.UpdateFrom(overrides)

	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, applog.New(cfg.LogLevel), nil
}
