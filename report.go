package skugraph

import "fmt"

// LoadResult summarizes one load run.
type LoadResult struct {
	Source               string
	Records              int
	BatchesLoaded        int
	BatchesSkipped       int
	NodesCreated         int
	RelationshipsCreated int
	PropertiesSet        int
	Resumed              bool
}

// Summary renders a one-paragraph human-readable load report.
func (r *LoadResult) Summary() string {
	resumed := ""
	if r.Resumed {
		resumed = fmt.Sprintf(" (resumed, %d batches skipped)", r.BatchesSkipped)
	}
	return fmt.Sprintf(
		"loaded %d records from %s in %d batches%s: %d nodes created, %d relationships created, %d properties set",
		r.Records, r.Source, r.BatchesLoaded, resumed,
		r.NodesCreated, r.RelationshipsCreated, r.PropertiesSet)
}
