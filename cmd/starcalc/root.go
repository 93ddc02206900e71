package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/starcalc"
	"github.com/siherrmann/starcalc/database"
	"github.com/siherrmann/starcalc/database/sqlite"
	"github.com/siherrmann/starcalc/helper"
	"github.com/siherrmann/starcalc/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "starcalc",
	Short:         "Star catalogue calculator",
	Long:          "starcalc resolves stars from the AT-HYG catalogue, measures distances between them at any epoch and finds their neighbors.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .starcalc.yaml)")
	rootCmd.PersistentFlags().String("backend", BackendSQLite, "store backend, sqlite or postgres")
	rootCmd.PersistentFlags().String("sqlite-path", "stars.db", "sqlite database file")
	rootCmd.PersistentFlags().String("catalogues", "", "catalogue configuration file (default embedded)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("sqlite_path", rootCmd.PersistentFlags().Lookup("sqlite-path"))
	_ = viper.BindPFlag("catalogues", rootCmd.PersistentFlags().Lookup("catalogues"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(resolveCmd, distanceCmd, nearbyCmd, noteCmd, listCmd, loadCmd, cataloguesCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".starcalc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("STARCALC")
	viper.AutomaticEnv()

	// No config file means defaults.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config file: %v\n", err)
		}
	}
}

// openStarCalc opens the configured store. Logs go to stderr so command
// output stays clean.
func openStarCalc() (*starcalc.StarCalc, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stderr, helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: level},
	}))

	catalogues, err := catalogueConfig(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendPostgres:
		dbConfig, err := helper.NewDatabaseConfiguration()
		if err != nil {
			return nil, err
		}
		db := helper.NewDatabase("starcalc", dbConfig, logger)
		store, err := database.NewStore(db, false)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return starcalc.NewStarCalcWithStore(store, catalogues, logger), nil
	default:
		store, err := sqlite.NewStore(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return starcalc.NewStarCalcWithStore(store, catalogues, logger), nil
	}
}

func catalogueConfig(cfg Config) (*model.CatalogueConfig, error) {
	if cfg.Catalogues == "" {
		return model.DefaultCatalogueConfig(), nil
	}
	return model.LoadCatalogueConfigFile(cfg.Catalogues)
}
