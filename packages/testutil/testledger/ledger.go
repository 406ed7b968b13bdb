// Package testledger provides an in-process stand-in for the TrustChain contract,
// good enough to drive services and API handlers in tests.
package testledger

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/products"
)

// ErrRejected is returned where the contract would revert.
var ErrRejected = ledger.ErrTransactionReverted

// Ledger records calls and keeps just enough state to answer queries.
type Ledger struct {
	mutex    sync.Mutex
	products map[string]*products.Product
	boxes    map[string][]string
	shipped  map[string]bool
	calls    []string
	nonce    uint64

	// FailProducts makes GetProduct fail for the listed product IDs.
	FailProducts map[string]error
	// FailMethods makes the named state changing methods fail.
	FailMethods map[string]error
}

var _ ledger.Ledger = &Ledger{}

func New() *Ledger {
	return &Ledger{
		products:     make(map[string]*products.Product),
		boxes:        make(map[string][]string),
		shipped:      make(map[string]bool),
		FailProducts: make(map[string]error),
		FailMethods:  make(map[string]error),
	}
}

// AddProduct puts a product on the ledger directly.
func (l *Ledger) AddProduct(p *products.Product) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	cp := *p
	l.products[p.ProductID] = &cp
	l.boxes[p.BoxID] = append(l.boxes[p.BoxID], p.ProductID)
}

// Calls returns the state changing methods invoked so far.
func (l *Ledger) Calls() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return append([]string(nil), l.calls...)
}

func (l *Ledger) tx(method string) (common.Hash, error) {
	l.calls = append(l.calls, method)
	if err := l.FailMethods[method]; err != nil {
		return common.Hash{}, err
	}
	l.nonce++

	return crypto.Keccak256Hash([]byte(method), common.BigToHash(new(big.Int).SetUint64(l.nonce)).Bytes()), nil
}

func (l *Ledger) RegisterBatchProducts(_ context.Context, batch *ledger.BatchRegistration) (common.Hash, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for _, id := range batch.ProductIDs {
		if _, exists := l.products[id]; exists {
			l.calls = append(l.calls, "registerBatchProducts")
			return common.Hash{}, ierrors.Wrapf(ErrRejected, "product %s already registered", id)
		}
	}

	hash, err := l.tx("registerBatchProducts")
	if err != nil {
		return hash, err
	}
	for _, id := range batch.ProductIDs {
		l.products[id] = &products.Product{
			ProductID:    id,
			BoxID:        batch.BoxID,
			SerialNumber: id,
			BatchNumber:  batch.BatchID,
			Specs:        "{}",
		}
		l.boxes[batch.BoxID] = append(l.boxes[batch.BoxID], id)
	}

	return hash, nil
}

func (l *Ledger) RegisterProduct(_ context.Context, product *products.Product) (common.Hash, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	hash, err := l.tx("registerProduct")
	if err != nil {
		return hash, err
	}
	cp := *product
	l.products[product.ProductID] = &cp
	l.boxes[product.BoxID] = append(l.boxes[product.BoxID], product.ProductID)

	return hash, nil
}

func (l *Ledger) ShipBox(_ context.Context, boxID string) (common.Hash, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if len(l.boxes[boxID]) == 0 {
		l.calls = append(l.calls, "shipBox")
		return common.Hash{}, ierrors.Wrapf(ErrRejected, "box %s is empty", boxID)
	}

	hash, err := l.tx("shipBox")
	if err != nil {
		return hash, err
	}
	l.shipped[boxID] = true
	for _, id := range l.boxes[boxID] {
		l.products[id].Shipped = true
	}

	return hash, nil
}

func (l *Ledger) update(method, productID string, apply func(p *products.Product) error) (common.Hash, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	p, ok := l.products[productID]
	if !ok {
		l.calls = append(l.calls, method)
		return common.Hash{}, ierrors.Wrapf(ErrRejected, "product %s not found", productID)
	}
	if err := apply(p); err != nil {
		l.calls = append(l.calls, method)
		return common.Hash{}, err
	}

	return l.tx(method)
}

func (l *Ledger) VerifyRetailer(_ context.Context, productID string) (common.Hash, error) {
	return l.update("verifyRetailer", productID, func(p *products.Product) error {
		if !p.Shipped {
			return ierrors.Wrapf(ErrRejected, "product %s not shipped", productID)
		}
		p.VerifiedByRetailer = true

		return nil
	})
}

func (l *Ledger) SaleComplete(_ context.Context, productID string) (common.Hash, error) {
	return l.update("saleComplete", productID, func(p *products.Product) error {
		if p.Sold {
			return ierrors.Wrapf(ErrRejected, "product %s already sold", productID)
		}
		p.Sold = true

		return nil
	})
}

func (l *Ledger) GetProduct(_ context.Context, productID string) (*products.Product, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err := l.FailProducts[productID]; err != nil {
		return nil, err
	}
	p, ok := l.products[productID]
	if !ok {
		return nil, ierrors.Wrapf(products.ErrProductNotFound, "product %s", productID)
	}
	cp := *p

	return &cp, nil
}

func (l *Ledger) GetProductsByBox(_ context.Context, boxID string) ([]string, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return append([]string(nil), l.boxes[boxID]...), nil
}

func (l *Ledger) IsBoxShipped(_ context.Context, boxID string) (bool, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.shipped[boxID], nil
}
