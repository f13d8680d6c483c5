package cmd

import (
	"fmt"

	"db-sync/internal/dialect"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DBConfig is one entry of the databases list in db-sync.yaml.
type DBConfig struct {
	Name     string `mapstructure:"name"`
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	Active   bool   `mapstructure:"active"`
}

// Config is the full, immutable run configuration. It is constructed once in
// the cmd layer and passed explicitly into every component.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string

	// push/pull specifics
	Dir         string
	ScriptPath  string
	ScratchDB   string
	DryRun      bool
	KeepScratch bool
	Jobs        int
	DiffTool    string
	DumpTool    string
}

// Conn returns the connection coordinates for dialects and external tools.
func (c Config) Conn() dialect.ConnInfo {
	return dialect.ConnInfo{Host: c.Host, Port: c.Port, User: c.User, Password: c.Password}
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// ResolveBaseConfig builds the connection part of Config with explicit
// precedence: Flag > Config File (active entry) > Default.
func ResolveBaseConfig(cmd *cobra.Command) (Config, error) {
	cfg := Config{
		Driver: "mysql",
		Host:   "127.0.0.1",
		Port:   3306,
		User:   "root",
	}

	if active, err := GetActiveDBConfig(); err == nil {
		if active.Driver != "" {
			cfg.Driver = active.Driver
		}
		if active.Host != "" {
			cfg.Host = active.Host
		}
		if active.Port != 0 {
			cfg.Port = active.Port
		}
		if active.User != "" {
			cfg.User = active.User
		}
		cfg.Password = active.Password
		cfg.Database = active.Database
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = flagDriver
	}
	if flags.Changed("host") {
		cfg.Host = flagHost
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("user") {
		cfg.User = flagUser
	}
	if flags.Changed("password") {
		cfg.Password = flagPassword
	}
	if flags.Changed("database") {
		cfg.Database = flagDatabase
	}

	return cfg, nil
}
