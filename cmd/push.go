package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"db-sync/internal/dialect"
	"db-sync/internal/reconcile"
	"db-sync/internal/schema"
	"db-sync/internal/scratch"
	"db-sync/internal/script"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	pushDir     string
	scriptPath  string
	dryRun      bool
	keepScratch bool
	scratchName string
	diffJobs    int
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Apply file-defined schema changes to the live database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := Base
		cfg.Dir = pushDir
		cfg.ScriptPath = scriptPath
		cfg.DryRun = dryRun
		cfg.KeepScratch = keepScratch
		cfg.ScratchDB = viper.GetString("scratch.database")
		cfg.Jobs = viper.GetInt("settings.jobs")
		cfg.DiffTool = viper.GetString("tools.diff")

		fmt.Printf("🔗 Connected via %s to %s@%s:%d/%s\n",
			cfg.Driver, cfg.User, cfg.Host, cfg.Port, cfg.Database)

		return runPush(cfg)
	},
}

func runPush(cfg Config) error {
	d := dialect.GetDialect(cfg.Driver)
	start := time.Now()

	// 1. File snapshot
	log.Printf("Reading schema definitions from %s...", cfg.Dir)
	defs, err := schema.ListDefinitions(cfg.Dir)
	if err != nil {
		return err
	}

	// 2. Live snapshot
	log.Println("Inspecting live tables...")
	live, err := schema.LiveTables(DB, d, cfg.Database)
	if err != nil {
		return err
	}

	// 3. Scratch database
	admin, err := sql.Open(cfg.Driver, d.DSN(cfg.Conn(), d.AdminDatabase()))
	if err != nil {
		return fmt.Errorf("failed to open admin connection: %w", err)
	}
	defer admin.Close()

	log.Printf("Rebuilding scratch database %s...", cfg.ScratchDB)
	if err := scratch.Rebuild(admin, d, cfg.ScratchDB); err != nil {
		return err
	}
	defer func() {
		if cfg.KeepScratch {
			log.Printf("Retaining scratch database %s (--keep-scratch)", cfg.ScratchDB)
			return
		}
		if err := scratch.Drop(admin, d, cfg.ScratchDB); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	scratchDB, err := sql.Open(cfg.Driver, d.DSN(cfg.Conn(), cfg.ScratchDB))
	if err != nil {
		return fmt.Errorf("failed to open scratch connection: %w", err)
	}
	defer scratchDB.Close()

	loaded := scratch.Load(scratchDB, defs)
	notSourced := scratch.Failed(loaded)

	// 4. Reconcile + assemble
	rec := reconcile.Tables(schema.TableNames(defs), live)

	differ := &script.ExecDiffer{
		Dialect:   d,
		Conn:      cfg.Conn(),
		LiveDB:    cfg.Database,
		ScratchDB: cfg.ScratchDB,
		Template:  cfg.DiffTool,
	}

	onProgress := func() {}
	if len(rec.InBoth) > 0 {
		uiprogress.Start()
		bar := uiprogress.AddBar(len(rec.InBoth)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Diffing: "
		})
		onProgress = func() { bar.Incr() }
	}

	body, stats := script.Assemble(d, rec, defs, differ, cfg.Jobs, onProgress)

	if len(rec.InBoth) > 0 {
		uiprogress.Stop()
	}

	// 5. Persist + apply
	if err := script.Write(cfg.ScriptPath, body); err != nil {
		log.Printf("Warning: %v (continuing, script only held in memory)", err)
	} else {
		log.Printf("Push script written to %s", cfg.ScriptPath)
	}

	applyErr := script.Apply(DB, body, cfg.DryRun)

	// 6. Report
	fmt.Println("\n📊 Push Summary:")
	fmt.Printf("    Defined in files : %d (%d failed to source into scratch)\n", len(defs), notSourced)
	fmt.Printf("    Present live     : %d\n", len(live))
	fmt.Printf("    Create: %d  Drop: %d  Alter: %d  Unchanged: %d  Diff failures: %d\n",
		stats.Created, stats.Dropped, stats.Altered, stats.Unchanged, stats.DiffFailures)

	if applyErr != nil {
		log.Printf("Push failed: %v (script kept at %s for inspection)", applyErr, cfg.ScriptPath)
		return applyErr
	}

	log.Printf("Push Done! Time Elapsed: %s", time.Since(start))
	return nil
}

func init() {
	RootCmd.AddCommand(pushCmd)

	pushCmd.Flags().StringVar(&pushDir, "dir", "./schema", "directory of per-table .sql definition files")
	pushCmd.Flags().StringVar(&scriptPath, "out", "./push.sql", "path to export the assembled push script")
	pushCmd.Flags().BoolVar(&dryRun, "dry-run", false, "write the script but do not execute it")
	pushCmd.Flags().BoolVar(&keepScratch, "keep-scratch", false, "retain the scratch database after the run")
	pushCmd.Flags().StringVar(&scratchName, "scratch-db", "", "scratch database name (overrides config)")
	pushCmd.Flags().IntVar(&diffJobs, "jobs", 0, "max concurrent structural diffs (overrides config)")

	viper.BindPFlag("scratch.database", pushCmd.Flags().Lookup("scratch-db"))
	viper.SetDefault("scratch.database", "db_sync_scratch")
	viper.BindPFlag("settings.jobs", pushCmd.Flags().Lookup("jobs"))
	viper.SetDefault("settings.jobs", 4)
}
