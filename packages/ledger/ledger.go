// Package ledger talks to the TrustChain contract, the authoritative record of
// product lifecycle state.
package ledger

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/products"
)

var (
	ErrLedgerUnavailable   = ierrors.New("ledger unavailable")
	ErrReadOnly            = ierrors.New("ledger client has no signing key")
	ErrTransactionReverted = ierrors.New("transaction reverted")
	ErrInvalidConfig       = ierrors.New("invalid ledger configuration")
)

// BatchRegistration is what the contract records for a batch.
type BatchRegistration struct {
	BatchID    string
	BoxID      string
	ProductIDs []string
}

// Ledger mirrors the operations of the TrustChain contract. State changing calls
// return once the transaction has been mined.
type Ledger interface {
	RegisterBatchProducts(ctx context.Context, batch *BatchRegistration) (common.Hash, error)
	RegisterProduct(ctx context.Context, product *products.Product) (common.Hash, error)
	ShipBox(ctx context.Context, boxID string) (common.Hash, error)
	VerifyRetailer(ctx context.Context, productID string) (common.Hash, error)
	SaleComplete(ctx context.Context, productID string) (common.Hash, error)

	GetProduct(ctx context.Context, productID string) (*products.Product, error)
	GetProductsByBox(ctx context.Context, boxID string) ([]string, error)
	IsBoxShipped(ctx context.Context, boxID string) (bool, error)
}

// Observer gets notified about every transaction the ledger client submits.
type Observer interface {
	ObserveTransaction(method string, err error, duration time.Duration)
}
