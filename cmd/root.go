package cmd

import (
	"fmt"
	"os"

	"botw/internal/config"
	"botw/internal/structures"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "botw",
	Short: "A Discord bot that sends Boss of the Week drops to a Google Sheet",
	Long: `botw registers the /botw slash command, appends submitted drops to a Google Sheet
for approval, and answers !botw with the current rankings read from the same sheet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment may already be populated.
		_ = godotenv.Load()

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (JSON or YAML) layered over the saved config")
}

// loadConfig exits the process when the configuration cannot be used.
func loadConfig(required ...config.Field) structures.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		fatalf("failed to load config: %v", err)
	}
	if err := config.Validate(cfg, required...); err != nil {
		fatalf("%v. set them in the environment or run 'botw init' first.", err)
	}
	return cfg
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
