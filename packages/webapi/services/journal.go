package services

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/registry"
)

// journal records the side effects of ledger transactions in the registry.
// Failures are logged, the transaction already happened.
type journal struct {
	log      log.Logger
	registry *registry.Registry
}

func (j *journal) recordTx(txHash common.Hash, method, subject string) {
	if err := j.registry.Transactions.Add(txHash, method, subject); err != nil {
		j.log.LogErrorf("failed to record %s transaction %s: %s", method, txHash.Hex(), err)
	}
}

func (j *journal) recordActivity(kind registry.ActivityKind, subject, message string) {
	if _, err := j.registry.Activity.Add(kind, subject, message); err != nil {
		j.log.LogErrorf("failed to record activity %s for %s: %s", kind, subject, err)
	}
}

// updateLocal mirrors a lifecycle change into the registry, if the product is known there.
func (j *journal) updateLocal(productID string, modify func(p *products.Product)) {
	if _, err := j.registry.Products.Update(productID, modify); err != nil && !isNotFound(err) {
		j.log.LogErrorf("failed to update product %s: %s", productID, err)
	}
}

func (j *journal) markBoxShipped(boxID string) error {
	ids, err := j.registry.Products.ByBox(boxID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := j.registry.Products.Update(id, func(p *products.Product) { p.Shipped = true }); err != nil {
			return err
		}
	}

	return nil
}
