// Package reconcile computes which tables to create, drop or diff between a
// file-defined schema snapshot and a live database. It is pure: no I/O, fully
// deterministic.
package reconcile

// Result partitions the two snapshots into three disjoint sets plus their
// ordered union. Merged preserves first-seen order (file list first, then any
// live-only names in live order) and drives the execution order of the
// assembled script.
type Result struct {
	Merged      []string
	OnlyInFiles []string
	OnlyLive    []string
	InBoth      []string
}

// Tables reconciles the file-defined table list against the live one.
// Duplicates within an input list are collapsed; each name appears exactly
// once in Merged and in exactly one of the three partitions.
func Tables(files, live []string) Result {
	fileSet := toSet(files)
	liveSet := toSet(live)

	var res Result
	seen := make(map[string]bool, len(files)+len(live))
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		res.Merged = append(res.Merged, name)
		switch {
		case fileSet[name] && liveSet[name]:
			res.InBoth = append(res.InBoth, name)
		case fileSet[name]:
			res.OnlyInFiles = append(res.OnlyInFiles, name)
		default:
			res.OnlyLive = append(res.OnlyLive, name)
		}
	}

	for _, name := range files {
		add(name)
	}
	for _, name := range live {
		add(name)
	}
	return res
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
