package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pxpub/config"
	"github.com/s0up4200/pxpub/filter"
	"github.com/s0up4200/pxpub/fivehundredpx"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *fivehundredpx.Client
	filters  *filter.Manager

	appVersion = "dev"
	buildTime  = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pxpub",
	Short: "A command line client for the public 500px API",
	Long: `pxpub calls the public endpoints of the 500px API using your application's
consumer key and secret. It can call any endpoint directly, search photos and
filter the results with expressions.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion sets the version information reported by the CLI
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger = setupLogger(cfg.Logging)

	client, err = newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create 500px client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Int("api_version", client.Version()).
		Str("base_url", cfg.API.BaseURL).
		Strs("presets", filters.ListFilters()).
		Msg("Initialized 500px client")

	return nil
}

// initializeLogging is used by commands that need no API credentials
func initializeLogging(cmd *cobra.Command, args []string) error {
	logCfg := config.LoggingConfig{Level: "info", Format: "console", Color: true}
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	logger = setupLogger(logCfg)
	return nil
}

// newClient builds the API client from configuration
func newClient(cfg *config.Config, logger zerolog.Logger) (*fivehundredpx.Client, error) {
	clientCfg := fivehundredpx.Config{
		Key:     cfg.API.Key,
		Secret:  cfg.API.Secret,
		Version: cfg.API.Version,
	}
	if cfg.Logging.TraceParams {
		clientCfg.Logger = fivehundredpx.ZerologLogFunc(logger)
	}

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = "pxpub/" + appVersion
	}

	return fivehundredpx.New(clientCfg,
		fivehundredpx.WithBaseURL(cfg.API.BaseURL),
		fivehundredpx.WithTimeout(cfg.API.Timeout),
		fivehundredpx.WithUserAgent(userAgent),
	)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; no color codes when stderr is redirected
	fd := os.Stderr.Fd()
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
