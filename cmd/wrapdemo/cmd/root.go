package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdziat/simple-invocation-wrappers/pkg/storage"
	"github.com/jdziat/simple-invocation-wrappers/pkg/telemetry"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:          "wrapdemo",
	Short:        "Run invocation wrapper scenarios",
	Long:         `wrapdemo runs a set of wrapped units, records every invocation in SQLite and lists the recorded history.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wrapdemo/config.yaml)")
	flags.String("db", "wrapdemo.db", "SQLite database for invocation records")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("output", "table", "output format: table or json")

	_ = viper.BindPFlag("db", flags.Lookup("db"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".wrapdemo"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WRAPDEMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
	}
}

// Config is the effective CLI configuration.
type Config struct {
	DB        string           `yaml:"db"`
	LogLevel  string           `yaml:"log_level"`
	Output    string           `yaml:"output"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// IsJSON reports whether JSON output is requested.
func (c Config) IsJSON() bool {
	return c.Output == "json"
}

func loadConfig() (Config, error) {
	cfg := Config{
		DB:       viper.GetString("db"),
		LogLevel: viper.GetString("log_level"),
		Output:   viper.GetString("output"),
	}
	if cfg.Output != "table" && cfg.Output != "json" {
		return Config{}, fmt.Errorf("invalid output format %q: want table or json", cfg.Output)
	}

	tcfg, err := telemetry.LoadConfig()
	if err != nil {
		return Config{}, err
	}
	cfg.Telemetry = tcfg
	return cfg, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func openStore(ctx context.Context, path string) (*storage.GormStore, error) {
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}
