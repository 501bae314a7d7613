package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (storage.RunRepository, error) {
	idSeq, err := backend.GetSequence(runRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &RunRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RunRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *RunRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRun persists a run record with a fresh sequence ID.
func (r *RunRepository) AddRun(ctx context.Context, run *core.RunRecord) (*core.RunRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		run.Id = core.ID(nextID)
		run.CreatedAt = time.Now().UTC()

		key := makeRunRecordKey(run.Id)
		if err := tx.Set(key, storage.MarshalRunRecord(run)); err != nil {
			return err
		}

		dateKey := makeRunDateKey(run.CreatedAt, run.Id)
		if err := tx.Set(dateKey, storage.MarshalID(run.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return run, err
}

// GetRun retrieves a run record by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.RunRecord, error) {
	var result *core.RunRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readRunRecord(tx, makeRunRecordKey(id))
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

// DeleteRuns removes run records by their IDs.
func (r *RunRepository) DeleteRuns(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRunRecordKey(id)

			run, err := r.readRunRecord(tx, key)
			if err != nil {
				return err
			}
			if run == nil {
				return storage.ErrNotFound
			}

			dateKey := makeRunDateKey(run.CreatedAt, run.Id)
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

// RecentRuns retrieves up to limit run records, most recent first.
func (r *RunRepository) RecentRuns(ctx context.Context, limit int) ([]*core.RunRecord, error) {
	var results []*core.RunRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialRunDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(runRecordDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var runID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				runID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			run, err := r.readRunRecord(tx, makeRunRecordKey(runID))
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readRunRecord reads a run record from the transaction.
func (r *RunRepository) readRunRecord(tx *badger.Txn, key []byte) (*core.RunRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var run *core.RunRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		run, unmarshalErr = storage.UnmarshalRunRecord(val)
		return unmarshalErr
	})
	return run, err
}
