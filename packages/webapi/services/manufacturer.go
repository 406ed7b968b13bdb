package services

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/registry"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
)

type ManufacturerService struct {
	journal

	ledger      ledger.Ledger
	provisioner products.Provisioner

	// serializes registrations so that a batch is never submitted twice
	registerMutex sync.Mutex
}

func NewManufacturerService(
	log log.Logger,
	l ledger.Ledger,
	reg *registry.Registry,
	verificationService interfaces.VerificationService,
) interfaces.ManufacturerService {
	return &ManufacturerService{
		journal:     journal{log: log, registry: reg},
		ledger:      l,
		provisioner: verificationService.Provision,
	}
}

func (s *ManufacturerService) Stats() (*interfaces.Stats, error) {
	var (
		stats = new(interfaces.Stats)
		err   error
	)
	if stats.TotalBatches, err = s.registry.Batches.Count(); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.registry.Products.Count(); err != nil {
		return nil, err
	}
	if stats.TotalShipped, err = s.registry.Products.CountShipped(); err != nil {
		return nil, err
	}
	if stats.TotalTransactions, err = s.registry.Transactions.Count(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *ManufacturerService) Activity(limit int) ([]*registry.Activity, error) {
	return s.registry.Activity.Latest(limit)
}

func (s *ManufacturerService) Batches() ([]*products.Batch, error) {
	return s.registry.Batches.List()
}

func (s *ManufacturerService) PrepareBatch(batch *products.Batch) ([]*products.Product, error) {
	return products.PrepareBatch(batch, s.provisioner)
}

// RegisterBatch registers the batch on the ledger, if available, and persists the
// batch together with its products. The returned hash is nil if the ledger is
// unavailable.
func (s *ManufacturerService) RegisterBatch(ctx context.Context, batch *products.Batch) (*common.Hash, []*products.Product, error) {
	items, err := s.PrepareBatch(batch)
	if err != nil {
		return nil, nil, err
	}

	s.registerMutex.Lock()
	defer s.registerMutex.Unlock()

	if _, err := s.registry.Batches.Get(batch.BatchID); err == nil {
		return nil, nil, ierrors.Wrapf(products.ErrBatchExists, "batch %s", batch.BatchID)
	} else if !ierrors.Is(err, products.ErrBatchNotFound) {
		return nil, nil, err
	}
	if boxed, err := s.registry.Products.ByBox(batch.BoxID); err != nil {
		return nil, nil, err
	} else if len(boxed) > 0 {
		return nil, nil, ierrors.Wrapf(products.ErrBoxInUse, "box %s", batch.BoxID)
	}

	var txHash *common.Hash
	if ledger.IsAvailable(s.ledger) {
		hash, err := s.ledger.RegisterBatchProducts(ctx, &ledger.BatchRegistration{
			BatchID:    batch.BatchID,
			BoxID:      batch.BoxID,
			ProductIDs: products.ProductIDs(items),
		})
		if err != nil {
			return nil, nil, err
		}
		txHash = &hash
	} else {
		s.log.LogWarnf("ledger unavailable, batch %s is only registered locally", batch.BatchID)
	}

	stored := *batch
	stored.Shipped = false
	stored.CreatedAt = time.Now()
	if txHash != nil {
		stored.TxHash = txHash.Hex()
	}
	if err := s.registry.Batches.Create(&stored); err != nil {
		return nil, nil, err
	}
	if err := s.registry.Products.Store(items...); err != nil {
		return nil, nil, err
	}

	if txHash != nil {
		s.recordTx(*txHash, "registerBatchProducts", batch.BatchID)
	}
	s.recordActivity(registry.ActivityBatchRegistered, batch.BatchID, "Batch "+batch.BatchID+" registered")
	s.log.LogInfof("registered batch %s with %d products in box %s", batch.BatchID, len(items), batch.BoxID)

	return txHash, items, nil
}

// RegisterProduct registers a single product into a box that has not been shipped
// yet. The returned hash is nil if the ledger is unavailable.
func (s *ManufacturerService) RegisterProduct(ctx context.Context, product *products.Product) (*common.Hash, *products.Product, error) {
	item, err := products.PrepareProduct(product, s.provisioner)
	if err != nil {
		return nil, nil, err
	}

	s.registerMutex.Lock()
	defer s.registerMutex.Unlock()

	if _, err := s.registry.Products.Get(item.ProductID); err == nil {
		return nil, nil, ierrors.Wrapf(products.ErrProductExists, "product %s", item.ProductID)
	} else if !isNotFound(err) {
		return nil, nil, err
	}
	if err := s.checkBoxOpen(item.BoxID); err != nil {
		return nil, nil, err
	}

	var txHash *common.Hash
	if ledger.IsAvailable(s.ledger) {
		hash, err := s.ledger.RegisterProduct(ctx, item)
		if err != nil {
			return nil, nil, err
		}
		txHash = &hash
	} else {
		s.log.LogWarnf("ledger unavailable, product %s is only registered locally", item.ProductID)
	}

	if err := s.registry.Products.Store(item); err != nil {
		return nil, nil, err
	}

	if txHash != nil {
		s.recordTx(*txHash, "registerProduct", item.ProductID)
	}
	s.recordActivity(registry.ActivityProductRegistered, item.ProductID, "Product "+item.ProductID+" registered in box "+item.BoxID)
	s.log.LogInfof("registered product %s in box %s", item.ProductID, item.BoxID)

	return txHash, item, nil
}

func (s *ManufacturerService) checkBoxOpen(boxID string) error {
	ids, err := s.registry.Products.ByBox(boxID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		p, err := s.registry.Products.Get(id)
		if err != nil {
			return err
		}
		if p.Shipped {
			return ierrors.Wrapf(products.ErrBoxShipped, "box %s", boxID)
		}
	}

	return nil
}

// ShipBatch ships the box of the batch and marks the batch and its products as
// shipped.
func (s *ManufacturerService) ShipBatch(ctx context.Context, batchID string) (*products.Batch, *common.Hash, error) {
	batch, err := s.registry.Batches.Get(batchID)
	if err != nil {
		return nil, nil, err
	}
	if batch.Shipped {
		return nil, nil, ierrors.Wrapf(products.ErrBatchShipped, "batch %s", batchID)
	}

	var txHash *common.Hash
	if ledger.IsAvailable(s.ledger) {
		hash, err := s.ledger.ShipBox(ctx, batch.BoxID)
		if err != nil {
			return nil, nil, err
		}
		txHash = &hash
		s.recordTx(hash, "shipBox", batch.BoxID)
	} else {
		s.log.LogWarnf("ledger unavailable, box %s is only marked shipped locally", batch.BoxID)
	}

	if batch, err = s.registry.Batches.MarkShipped(batchID); err != nil {
		return nil, nil, err
	}
	if err := s.markBoxShipped(batch.BoxID); err != nil {
		return nil, nil, err
	}
	s.recordActivity(registry.ActivityBoxShipped, batch.BoxID, "Batch "+batchID+" shipped in box "+batch.BoxID)

	return batch, txHash, nil
}
