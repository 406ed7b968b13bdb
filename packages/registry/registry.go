// Package registry keeps the node's local view of batches, products and the
// lifecycle events it drove on the ledger.
package registry

import (
	"github.com/trustchain/trustchain/packages/database"
)

// Registry bundles the node's repositories.
type Registry struct {
	Batches      *BatchRegistry
	Products     *ProductRegistry
	Activity     *ActivityLog
	Transactions *TransactionLog
}

func New(db *database.Manager) (*Registry, error) {
	batches, err := db.Store(database.RealmBatches)
	if err != nil {
		return nil, err
	}
	productStore, err := db.Store(database.RealmProducts)
	if err != nil {
		return nil, err
	}
	boxes, err := db.Store(database.RealmBoxes)
	if err != nil {
		return nil, err
	}
	activity, err := db.Store(database.RealmActivity)
	if err != nil {
		return nil, err
	}
	txs, err := db.Store(database.RealmTransactions)
	if err != nil {
		return nil, err
	}

	return &Registry{
		Batches:      NewBatchRegistry(batches),
		Products:     NewProductRegistry(productStore, boxes),
		Activity:     NewActivityLog(activity),
		Transactions: NewTransactionLog(txs),
	}, nil
}
