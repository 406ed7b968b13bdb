package registry

import (
	"slices"
	"sync"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"

	"github.com/trustchain/trustchain/packages/products"
)

type BatchRegistry struct {
	mutex sync.Mutex
	store kvstore.KVStore
}

func NewBatchRegistry(store kvstore.KVStore) *BatchRegistry {
	return &BatchRegistry{store: store}
}

// Create stores a new batch and fails with ErrBatchExists if the ID is taken.
func (r *BatchRegistry) Create(batch *products.Batch) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	has, err := r.store.Has([]byte(batch.BatchID))
	if err != nil {
		return err
	}
	if has {
		return ierrors.Wrapf(products.ErrBatchExists, "batch %s", batch.BatchID)
	}

	return save(r.store, []byte(batch.BatchID), batch)
}

func (r *BatchRegistry) Get(batchID string) (*products.Batch, error) {
	batch, err := load[products.Batch](r.store, []byte(batchID))
	if ierrors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ierrors.Wrapf(products.ErrBatchNotFound, "batch %s", batchID)
	}

	return batch, err
}

// Update applies modify to the stored batch atomically.
func (r *BatchRegistry) Update(batchID string, modify func(b *products.Batch) error) (*products.Batch, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	batch, err := r.Get(batchID)
	if err != nil {
		return nil, err
	}
	if err := modify(batch); err != nil {
		return nil, err
	}

	return batch, save(r.store, []byte(batchID), batch)
}

func (r *BatchRegistry) MarkShipped(batchID string) (*products.Batch, error) {
	return r.Update(batchID, func(b *products.Batch) error {
		b.Shipped = true
		return nil
	})
}

// List returns all batches, newest first.
func (r *BatchRegistry) List() ([]*products.Batch, error) {
	batches := make([]*products.Batch, 0)
	if err := each(r.store, kvstore.EmptyPrefix, func(b *products.Batch) bool {
		batches = append(batches, b)
		return true
	}); err != nil {
		return nil, err
	}

	slices.SortStableFunc(batches, func(a, b *products.Batch) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return batches, nil
}

func (r *BatchRegistry) Count() (int, error) {
	return count(r.store, kvstore.EmptyPrefix)
}
