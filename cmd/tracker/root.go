package tracker

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/codesolver12/weight-loss-tracker/internal/app"
)

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg      *viper.Viper
	settings app.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "tracker logs food, weight and sleep and shows weight-loss trends",
	Long: "tracker is a local-first weight-loss journal: log meals, weigh-ins and sleep, then view rolling trends,\n" +
		"a nutrition to weight-change correlation matrix and a two-week weight forecast.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: <user config dir>/weight-loss-tracker/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")
}

// loadSettings resolves flag > env > config file > default for this run.
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg = app.NewViper()
	if err := cfg.BindPFlag(app.KeyDB, cmd.Flags().Lookup("db")); err != nil {
		return err
	}
	if err := cfg.BindPFlag(app.KeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if err := app.ReadConfig(cfg, cfgFile); err != nil {
		return err
	}
	s, err := app.SettingsFrom(cfg)
	if err != nil {
		return err
	}
	l, err := app.NewLogger(s.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	settings, logger = s, l
	logger.Debug("settings resolved", zap.String("db", s.DBPath), zap.String("config", s.ConfigFile))
	return nil
}
