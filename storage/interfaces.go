package storage

import (
	"context"

	"github.com/poiesic/querygen/core"
)

// Repository provides common storage operations shared across all
// repositories. Implementations must be thread-safe and support
// concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// QueryRepository provides operations for saved Boolean queries.
// Records are content-addressed: the ID derives from the query text, so
// saving the same query twice yields the same record.
type QueryRepository interface {
	Repository

	// SaveQuery persists a query record. An ID of 0 is replaced with the
	// content-based ID of the query text. Saving an existing query keeps
	// its original CreatedAt and updates the keywords.
	SaveQuery(ctx context.Context, record *core.QueryRecord) (*core.QueryRecord, error)

	// GetQuery retrieves a query record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetQuery(ctx context.Context, id core.ID) (*core.QueryRecord, error)

	// DeleteQueries removes query records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteQueries(ctx context.Context, ids ...core.ID) error

	// RecentQueries retrieves up to limit query records, most recent
	// first.
	RecentQueries(ctx context.Context, limit int) ([]*core.QueryRecord, error)
}

// RunRepository provides operations for evaluation run summaries.
// Records get sequential IDs from the backend.
type RunRepository interface {
	Repository

	// AddRun persists a run record, assigning it a sequence ID and a
	// CreatedAt timestamp.
	AddRun(ctx context.Context, run *core.RunRecord) (*core.RunRecord, error)

	// GetRun retrieves a run record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.RunRecord, error)

	// DeleteRuns removes run records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteRuns(ctx context.Context, ids ...core.ID) error

	// RecentRuns retrieves up to limit run records, most recent first.
	RecentRuns(ctx context.Context, limit int) ([]*core.RunRecord, error)
}
