package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"autosphere-api/internal/client"
	"autosphere-api/internal/config"
	"autosphere-api/internal/logging"
	"autosphere-api/internal/model"
	"autosphere-api/internal/service"
)

var (
	// Global flags
	configPath string
	verbose    bool
	logFile    string
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

// carLookup is what every command needs from the service
type carLookup interface {
	FetchCarDetails(ctx context.Context, query string) (*model.Car, error)
	FetchFeaturedCars(ctx context.Context) ([]model.Car, error)
}

// newCarLookup builds the service and returns a cleanup func. Tests replace it.
var newCarLookup = func(ctx context.Context) (carLookup, func(), error) {
	oracle, err := client.New(ctx, cfg.Oracle, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create oracle client: %w", err)
	}
	return service.NewCarService(oracle, logger), func() { oracle.Close() }, nil
}

var rootCmd = &cobra.Command{
	Use:   "autosphere",
	Short: "AutoSphere - car prices, license classes and DIY repair guides",
	Long: `AutoSphere looks up cars with a generative AI model: market price,
license class, a description and common problems you can fix at home.

Run without arguments to start the interactive browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}

		// The interactive UI owns the terminal: log to a file or not at all
		if cmd == cmd.Root() {
			if logFile == "" {
				logger = zap.NewNop()
				return nil
			}
			logger, err = logging.NewFile(level, logFile)
			return err
		}

		logger, err = logging.New(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment variables win)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file for the interactive UI")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for one-shot commands")

	lookupCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the record as JSON")
	featuredCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the records as JSON")
	lookupsCmd.Flags().IntVar(&recentLimit, "limit", 20, "Number of recent lookups to show")
	lookupsCmd.Flags().DurationVar(&pruneAge, "prune", 0, "Delete lookups older than this age first (e.g. 720h)")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(featuredCmd)
	rootCmd.AddCommand(lookupsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
