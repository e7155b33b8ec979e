// Package cli provides the command-line interface for the payoff analyzer.
package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-payoff/internal/config"
	"options-payoff/internal/logging"
	"options-payoff/internal/models"
	"options-payoff/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-02-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.StrategyStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize SQLite store
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	strategyStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, save/list commands will be unavailable")
	} else {
		app.Store = strategyStore
		logger.Debug().Str("path", dbPath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "payoff",
		Short: "Options strategy payoff analyzer",
		Long: `Payoff is a command-line analyzer for Indian index option strategies.

It computes expiration payoff curves for template strategies like covered
calls and iron condors, evaluates arbitrary multi-leg positions, derives
max profit, max loss, and break-even prices, and tracks realized P&L for
closed legs. Strategies can be saved locally and served over HTTP.

Use 'payoff help <command>' for more information about a command.
Use 'payoff examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-payoff)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newCalcCmd(app))
	rootCmd.AddCommand(newCustomCmd(app))
	rootCmd.AddCommand(newExitCmd(app))
	rootCmd.AddCommand(newStrategyCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newExamplesCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Options Payoff Analyzer v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open configuration file in editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			configPath := filepath.Join(config.DefaultConfigDir(), "config.toml")
			output.Info("Configuration file: %s", configPath)
			output.Println("Edit this file to change settings.")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Payoff Defaults")
	output.Printf("  Underlying:      %.2f\n", cfg.Payoff.DefaultUnderlying)
	output.Printf("  Range Percent:   %.1f%%\n", cfg.Payoff.DefaultRangePercent)
	output.Printf("  Points:          %d\n", cfg.Payoff.DefaultNumPoints)
	output.Println()

	output.Bold("Server")
	output.Printf("  Address:         %s\n", cfg.Server.Addr)
	output.Printf("  Read Timeout:    %s\n", cfg.Server.ReadTimeout)
	output.Printf("  Write Timeout:   %s\n", cfg.Server.WriteTimeout)
	output.Println()

	output.Bold("Database")
	output.Printf("  Path:            %s\n", cfg.Database.Path)
	output.Println()

	output.Bold("UI")
	output.Printf("  Color:           %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Chart:           %dx%d\n", cfg.UI.ChartWidth, cfg.UI.ChartHeight)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v\n", cfg.Logging.File)

	return nil
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflows",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			output.Bold("Template strategies")
			output.Println(`  payoff calc covered-call --set futuresLotSize=50 --set futuresPrice=18000 \
      --set callLotSize=50 --set callStrike=18500 --set premium=200`)
			output.Println(`  payoff calc long-straddle --set strikePrice=18000 --set callLotSize=50 \
      --set putLotSize=50 --set callPremium=200 --set putPremium=180 --chart`)
			output.Println()

			output.Bold("Custom multi-leg strategies")
			output.Println(`  payoff custom --leg CE:SELL:19000:110:50 --leg PE:SELL:17000:95:50`)
			output.Println(`  payoff custom --leg FUT:BUY:18000:0:50 --leg CE:SELL:18500:200:50 --chart`)
			output.Println()

			output.Bold("Realized P&L for closed legs")
			output.Println(`  payoff exit --leg CE:SELL:18500:200:50:80 --leg PE:SELL:17500:150:50`)
			output.Println()

			output.Bold("Saved strategies")
			output.Println(`  payoff calc iron-condor --set ... --save "march-condor"`)
			output.Println(`  payoff strategy list`)
			output.Println(`  payoff strategy show 3 --chart`)
			output.Println(`  payoff strategy delete 3`)
			output.Println()

			output.Bold("HTTP API")
			output.Println(`  payoff serve --addr :8080`)
		},
	}
}

// strategyTypeHelp lists the supported template types for help text.
func strategyTypeHelp() string {
	s := ""
	for _, t := range models.StrategyTypes {
		if t == models.CustomStrategy {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += string(t)
	}
	return s
}
