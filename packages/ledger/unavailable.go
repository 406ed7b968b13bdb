package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/products"
)

// Unavailable is the Ledger used when the node runs without a chain connection.
type Unavailable struct {
	reason string
}

var _ Ledger = &Unavailable{}

func NewUnavailable(reason string) *Unavailable {
	return &Unavailable{reason: reason}
}

func (u *Unavailable) err() error {
	return ierrors.Wrap(ErrLedgerUnavailable, u.reason)
}

func (u *Unavailable) RegisterBatchProducts(context.Context, *BatchRegistration) (common.Hash, error) {
	return common.Hash{}, u.err()
}

func (u *Unavailable) RegisterProduct(context.Context, *products.Product) (common.Hash, error) {
	return common.Hash{}, u.err()
}

func (u *Unavailable) ShipBox(context.Context, string) (common.Hash, error) {
	return common.Hash{}, u.err()
}

func (u *Unavailable) VerifyRetailer(context.Context, string) (common.Hash, error) {
	return common.Hash{}, u.err()
}

func (u *Unavailable) SaleComplete(context.Context, string) (common.Hash, error) {
	return common.Hash{}, u.err()
}

func (u *Unavailable) GetProduct(context.Context, string) (*products.Product, error) {
	return nil, u.err()
}

func (u *Unavailable) GetProductsByBox(context.Context, string) ([]string, error) {
	return nil, u.err()
}

func (u *Unavailable) IsBoxShipped(context.Context, string) (bool, error) {
	return false, u.err()
}

// IsAvailable reports whether l is connected to a chain.
func IsAvailable(l Ledger) bool {
	_, ok := l.(*Unavailable)
	return !ok
}
