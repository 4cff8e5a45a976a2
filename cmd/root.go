// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"xview/internal/config"
	"xview/internal/imagefx"
	"xview/internal/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagProxy   string
	flagTimeout int
	flagQuality string
	flagBlur    int
	flagJSON    bool
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

// logger is shared by the commands and the provider.
var logger = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "xview",
	Short: "Look up xview videos and profiles from the terminal",
	Long: `xview resolves video and profile pages into structured metadata,
selects media URLs by quality, fetches (optionally blurred) thumbnails and
searches listings.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if isTerminal(os.Stdout) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		debugf("command failed: %v", err)
		fmt.Fprintln(os.Stderr, "error:", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProxy, "proxy", "", "Proxy URL (http, https or socks5)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds (default 30)")
	rootCmd.PersistentFlags().StringVarP(&flagQuality, "quality", "q", "", "Video quality: best | worst | half | 720 | 1080p")
	rootCmd.PersistentFlags().IntVarP(&flagBlur, "blur", "b", 0, "Thumbnail blur level 0-100")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(thumbCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	flags := cmd.Flags()
	if flagProxy != "" {
		cfg.Proxy = flagProxy
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if flagQuality != "" {
		cfg.Quality = flagQuality
	}
	if flags.Changed("blur") {
		cfg.BlurLevel = flagBlur
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configureLogger(cfg.Debug)
	return nil
}

func configureLogger(debug bool) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !debug,
		FullTimestamp:    debug,
	})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		logger.Debugf(format, args...)
	}
}

// newProvider builds the xview provider from the merged configuration.
func newProvider() (*provider.XView, error) {
	p, err := provider.NewXView(provider.Options{
		Root:        cfg.Base,
		Proxy:       cfg.Proxy,
		Timeout:     cfg.TimeoutDuration(),
		RateLimit:   cfg.RateLimit,
		Transformer: imagefx.Blur{},
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	debugf("provider ready: root=%s timeout=%ds rate=%g/s", cfg.Base, cfg.Timeout, cfg.RateLimit)
	return p, nil
}
