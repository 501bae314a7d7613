package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/storage"
)

// QueryRepository implements storage.QueryRepository for BadgerDB.
type QueryRepository struct {
	backend *Backend
}

var _ storage.QueryRepository = (*QueryRepository)(nil)

// NewQueryRepository creates a new QueryRepository.
func NewQueryRepository(backend *Backend) (storage.QueryRepository, error) {
	return &QueryRepository{backend: backend}, nil
}

// Close releases resources. QueryRepository has no resources to release.
func (r *QueryRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *QueryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveQuery persists a query record under its content-based ID. Saving a
// query that already exists keeps the original CreatedAt and replaces the
// keywords.
func (r *QueryRepository) SaveQuery(ctx context.Context, record *core.QueryRecord) (*core.QueryRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if record.Id == 0 {
			record.Id = core.IDFromContent(record.Query)
		}

		key := makeQueryRecordKey(record.Id)
		old, err := r.readQueryRecord(tx, key)
		if err != nil {
			return err
		}
		if old != nil {
			record.CreatedAt = old.CreatedAt
		} else {
			record.CreatedAt = time.Now().UTC()
			dateKey := makeQueryDateKey(record.CreatedAt, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalQueryRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return record, err
}

// GetQuery retrieves a query record by ID.
func (r *QueryRepository) GetQuery(ctx context.Context, id core.ID) (*core.QueryRecord, error) {
	var result *core.QueryRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readQueryRecord(tx, makeQueryRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// DeleteQueries removes query records by their IDs.
func (r *QueryRepository) DeleteQueries(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeQueryRecordKey(id)

			record, err := r.readQueryRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			dateKey := makeQueryDateKey(record.CreatedAt, record.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// RecentQueries retrieves up to limit query records, most recent first.
func (r *QueryRepository) RecentQueries(ctx context.Context, limit int) ([]*core.QueryRecord, error) {
	var results []*core.QueryRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index and walk
		// backwards.
		startKey := makePartialQueryDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(queryRecordDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readQueryRecord(tx, makeQueryRecordKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readQueryRecord reads a query record from the transaction.
func (r *QueryRepository) readQueryRecord(tx *badger.Txn, key []byte) (*core.QueryRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.QueryRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalQueryRecord(val)
		return unmarshalErr
	})
	return record, err
}
