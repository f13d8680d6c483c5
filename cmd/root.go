package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"db-sync/internal/dialect"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	flagDriver   string
	flagHost     string
	flagPort     int
	flagUser     string
	flagPassword string
	flagDatabase string

	// DB is the live connection, opened once for the whole run.
	DB *sql.DB
	// Base is the resolved connection configuration, built once and passed
	// explicitly into every component.
	Base Config
)

var RootCmd = &cobra.Command{
	Use:   "db-sync",
	Short: "A schema synchronization tool",
	Long: `
  ____  ____    ______   ___   _  ____
 |  _ \| __ )  / ___\ \ / / \ | |/ ___|
 | | | |  _ \  \___ \\ V /|  \| | |
 | |_| | |_) |  ___) || | | |\  | |___
 |____/|____/  |____/ |_| |_| \_|\____|

DB SYNC - Schema Directory <-> Live Database Reconciler
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ResolveBaseConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Database == "" {
			return fmt.Errorf("database name is required (via --database or config)")
		}
		Base = cfg

		d := dialect.GetDialect(cfg.Driver)
		DB, err = sql.Open(cfg.Driver, d.DSN(cfg.Conn(), cfg.Database))
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		if err := DB.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-sync.yaml)")
	RootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "mysql", "database driver (mysql, postgres, sqlserver)")
	RootCmd.PersistentFlags().StringVar(&flagHost, "host", "127.0.0.1", "database host")
	RootCmd.PersistentFlags().IntVar(&flagPort, "port", 3306, "database port")
	RootCmd.PersistentFlags().StringVar(&flagUser, "user", "root", "database user")
	RootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "database password")
	RootCmd.PersistentFlags().StringVar(&flagDatabase, "database", "", "live database name")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-sync")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
