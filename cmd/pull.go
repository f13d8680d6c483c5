package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"db-sync/internal/dialect"
	"db-sync/internal/dump"
	"db-sync/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pullDir string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Export the live database schema into per-table files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := Base
		cfg.Dir = pullDir
		cfg.DumpTool = viper.GetString("tools.dump")

		fmt.Printf("🔗 Connected via %s to %s@%s:%d/%s\n",
			cfg.Driver, cfg.User, cfg.Host, cfg.Port, cfg.Database)

		return runPull(cfg)
	},
}

func runPull(cfg Config) error {
	d := dialect.GetDialect(cfg.Driver)
	start := time.Now()

	log.Println("Inspecting live tables...")
	live, err := schema.LiveTables(DB, d, cfg.Database)
	if err != nil {
		return err
	}
	if len(live) == 0 {
		return fmt.Errorf("no tables found in %s: nothing to pull", cfg.Database)
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create schema directory %s: %w", cfg.Dir, err)
	}

	dumper := &dump.Dumper{
		Dialect:  d,
		Conn:     cfg.Conn(),
		Database: cfg.Database,
		Template: cfg.DumpTool,
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(live)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Dumping: "
	})

	liveSet := make(map[string]bool, len(live))
	failed := 0
	for _, table := range live {
		liveSet[table] = true
		out, err := dumper.Table(table)
		if err != nil {
			log.Printf("Warning: %v (keeping existing file if any)", err)
			failed++
			bar.Incr()
			continue
		}
		path := filepath.Join(cfg.Dir, table+schema.FileSuffix)
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			log.Printf("Warning: failed to write %s: %v", path, err)
			failed++
		}
		bar.Incr()
	}
	uiprogress.Stop()

	// Remove stale definition files for tables no longer live.
	removed := 0
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return fmt.Errorf("failed to re-read schema directory %s: %w", cfg.Dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), schema.FileSuffix) {
			continue
		}
		table := strings.TrimSuffix(entry.Name(), schema.FileSuffix)
		if liveSet[table] {
			continue
		}
		path := filepath.Join(cfg.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("Warning: failed to remove stale file %s: %v", path, err)
			continue
		}
		log.Printf("Removed stale definition %s", path)
		removed++
	}

	fmt.Println("\n📊 Pull Summary:")
	fmt.Printf("    Tables exported : %d (%d failed)\n", len(live)-failed, failed)
	fmt.Printf("    Stale files removed : %d\n", removed)
	log.Printf("Pull Done! Time Elapsed: %s", time.Since(start))
	return nil
}

func init() {
	RootCmd.AddCommand(pullCmd)

	pullCmd.Flags().StringVar(&pullDir, "dir", "./schema", "directory to write per-table .sql definition files")
}
