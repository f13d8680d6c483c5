// Package script turns a reconciliation result into a single executable push
// script and applies it.
package script

import (
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"db-sync/internal/dialect"
	"db-sync/internal/reconcile"
	"db-sync/internal/schema"
)

// Stats summarizes what the assembled script does per table.
type Stats struct {
	Created      int
	Dropped      int
	Altered      int
	Unchanged    int
	DiffFailures int
}

type diffResult struct {
	out string
	err error
}

// Assemble folds the reconciliation result into one script, in Merged order:
// file-only tables get their full CREATE statement, live-only tables get a
// defensive DROP TABLE IF EXISTS, and tables present on both sides get the
// external differ's output verbatim. Every fragment is followed by a newline
// even when empty.
//
// Diffs are independent per table, so they run under a task group bounded by
// jobs; the script is still reassembled in canonical Merged order, not
// completion order. A failed diff degrades to a logged no-op and is counted
// in Stats.DiffFailures rather than aborting the run.
func Assemble(d dialect.Dialect, res reconcile.Result, defs []schema.Definition, differ Differ, jobs int, onProgress func()) (string, Stats) {
	byTable := make(map[string]schema.Definition, len(defs))
	for _, def := range defs {
		byTable[def.Table] = def
	}
	onlyFiles := toSet(res.OnlyInFiles)
	onlyLive := toSet(res.OnlyLive)

	diffs := diffAll(res.InBoth, differ, jobs, onProgress)

	var b strings.Builder
	var stats Stats
	for _, table := range res.Merged {
		switch {
		case onlyFiles[table]:
			// New table: its definition is added as-is.
			b.WriteString(byTable[table].SQL)
			stats.Created++
		case onlyLive[table]:
			b.WriteString(d.DropTableIfExists(table))
			stats.Dropped++
		default:
			dr := diffs[table]
			if dr.err != nil {
				log.Printf("Warning: structural diff failed for %s: %v (no fragment emitted)", table, dr.err)
				stats.DiffFailures++
			} else if strings.TrimSpace(dr.out) == "" {
				stats.Unchanged++
			} else {
				stats.Altered++
			}
			b.WriteString(dr.out)
		}
		b.WriteString("\n")
	}
	return b.String(), stats
}

// diffAll runs the per-table diffs with at most jobs in flight and returns
// the results keyed by table. onProgress is called once per completed table.
func diffAll(tables []string, differ Differ, jobs int, onProgress func()) map[string]diffResult {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]diffResult, len(tables))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, table := range tables {
		i, table := i, table
		g.Go(func() error {
			out, err := differ.Diff(table)
			results[i] = diffResult{out: out, err: err}
			if onProgress != nil {
				onProgress()
			}
			return nil
		})
	}
	g.Wait()

	byTable := make(map[string]diffResult, len(tables))
	for i, table := range tables {
		byTable[table] = results[i]
	}
	return byTable
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
