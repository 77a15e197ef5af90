package main

import (
	"fmt"
	"os"

	"retail-dashboard/internal/config"
	"retail-dashboard/internal/data"
	"retail-dashboard/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose    bool
	configPath string
	backendURL string

	cfg    *config.Config
	client *data.Client
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "RetailMind dashboard in the terminal",
	Long: `Browse products, run what-if simulations and upload inventory against
the RetailMind analytics backend without opening the web dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if backendURL != "" {
			cfg = config.Merge(cfg, &config.Config{Backend: config.BackendConfig{BaseURL: backendURL}})
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		client = data.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger.Named("backend"))
		client.Cache = data.NewResponseCache(cfg.Cache.TTL)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("DASHBOARD_CONFIG"), "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Analytics backend URL (overrides config)")

	rootCmd.AddCommand(
		healthCmd,
		productsCmd,
		analyzeCmd,
		tabsCmd,
		simulateCmd,
		simulateAllCmd,
		storeSimCmd,
		uploadCmd,
		copilotCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
