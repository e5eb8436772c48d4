package graph

import "context"

// Relationship types in the product graph.
const (
	EdgeBelongsTo        = "BELONGS_TO"
	EdgeHasSpecification = "HAS_SPECIFICATION"
)

// Counters summarizes the write effects of one or more statements.
type Counters struct {
	NodesCreated         int
	RelationshipsCreated int
	PropertiesSet        int
}

// Add returns the element-wise sum of two counter sets.
func (c Counters) Add(other Counters) Counters {
	return Counters{
		NodesCreated:         c.NodesCreated + other.NodesCreated,
		RelationshipsCreated: c.RelationshipsCreated + other.RelationshipsCreated,
		PropertiesSet:        c.PropertiesSet + other.PropertiesSet,
	}
}

// Tx is one explicit write transaction. Statements take effect only after
// Commit; Rollback discards them. Commit and Rollback release the underlying
// session, and calling either after the transaction is finished is a no-op.
type Tx interface {
	// Run executes one parameterized statement inside the transaction.
	Run(ctx context.Context, query string, params map[string]any) (Counters, error)

	// Commit makes the transaction's writes durable.
	Commit(ctx context.Context) error

	// Rollback discards the transaction's writes.
	Rollback(ctx context.Context) error
}

// Store is a transactional client for the product graph. Implementations
// must support one explicit write transaction at a time per caller; the
// ingestor serializes its own use.
type Store interface {
	// BeginTx opens an explicit write transaction.
	BeginTx(ctx context.Context) (Tx, error)

	// Close releases the client and its connection pool.
	Close(ctx context.Context) error
}
