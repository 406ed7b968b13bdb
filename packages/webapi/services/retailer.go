package services

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/metrics"
	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/registry"
	"github.com/trustchain/trustchain/packages/seal"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
)

// DefaultBoxFetchConcurrency bounds the parallel product reads of a box.
const DefaultBoxFetchConcurrency = 8

func isNotFound(err error) bool {
	return ierrors.Is(err, products.ErrProductNotFound)
}

type RetailerService struct {
	journal

	ledger         ledger.Ledger
	productService interfaces.ProductService
	verifier       *seal.Verifier
	metrics        *metrics.Provider
	concurrency    int
}

func NewRetailerService(
	log log.Logger,
	l ledger.Ledger,
	reg *registry.Registry,
	productService interfaces.ProductService,
	verifier *seal.Verifier,
	metricsProvider *metrics.Provider,
) interfaces.RetailerService {
	return &RetailerService{
		journal:        journal{log: log, registry: reg},
		ledger:         l,
		productService: productService,
		verifier:       verifier,
		metrics:        metricsProvider,
		concurrency:    DefaultBoxFetchConcurrency,
	}
}

func validateID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return apierrors.InvalidPropertyError(name, ierrors.New("must not be empty"))
	}

	return nil
}

// Box fetches all products of a box from the ledger. Products that cannot be
// fetched are returned with their error instead of failing the whole box.
func (s *RetailerService) Box(ctx context.Context, boxID string) ([]*interfaces.BoxEntry, error) {
	if err := validateID("boxId", boxID); err != nil {
		return nil, err
	}

	ids, err := s.ledger.GetProductsByBox(ctx, boxID)
	if err != nil {
		return nil, err
	}

	entries := make([]*interfaces.BoxEntry, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			p, err := s.productService.GetProduct(gctx, id)
			if err != nil {
				s.log.LogDebugf("failed to fetch product %s of box %s: %s", id, boxID, err)
			}
			entries[i] = &interfaces.BoxEntry{ProductID: id, Product: p, Err: err}

			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *RetailerService) IsBoxShipped(ctx context.Context, boxID string) (bool, error) {
	if err := validateID("boxId", boxID); err != nil {
		return false, err
	}

	return s.ledger.IsBoxShipped(ctx, boxID)
}

// VerifyBox confirms receipt of every product of the box. The products are
// processed one by one, a failure does not stop the others.
func (s *RetailerService) VerifyBox(ctx context.Context, boxID string) ([]*interfaces.TxResult, error) {
	if err := validateID("boxId", boxID); err != nil {
		return nil, err
	}

	ids, err := s.ledger.GetProductsByBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ierrors.Wrapf(apierrors.ErrNotFound, "box %s has no products", boxID)
	}

	results := make([]*interfaces.TxResult, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hash, err := s.VerifyProduct(ctx, id)
		results = append(results, &interfaces.TxResult{ProductID: id, TxHash: hash, Err: err})
	}

	return results, nil
}

func (s *RetailerService) VerifyProduct(ctx context.Context, productID string) (common.Hash, error) {
	if err := validateID("productId", productID); err != nil {
		return common.Hash{}, err
	}

	hash, err := s.ledger.VerifyRetailer(ctx, productID)
	if err != nil {
		return common.Hash{}, err
	}

	s.recordTx(hash, "verifyRetailer", productID)
	s.updateLocal(productID, func(p *products.Product) { p.VerifiedByRetailer = true })
	s.recordActivity(registry.ActivityProductVerified, productID, "Product "+productID+" verified by retailer")

	return hash, nil
}

// VerifySeal checks a scanned dynamic seal code against the product's seed.
func (s *RetailerService) VerifySeal(ctx context.Context, productID, code string) (*interfaces.SealCheck, error) {
	if err := validateID("productId", productID); err != nil {
		return nil, err
	}
	if err := validateID("code", code); err != nil {
		return nil, err
	}

	product, err := s.productService.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	seed := product.ParsedSpecs().SealSeed()
	if seed == "" {
		if local, err := s.registry.Products.Get(productID); err == nil {
			seed = local.ParsedSpecs().SealSeed()
		}
	}

	result, err := s.verifier.Verify(productID, seed, code)
	switch {
	case err != nil:
		s.metrics.SealVerification(metrics.SealMalformed)
		return nil, err
	case result.Valid:
		s.metrics.SealVerification(metrics.SealValid)
	default:
		s.metrics.SealVerification(metrics.SealInvalid)
	}

	return &interfaces.SealCheck{Result: result, Product: product}, nil
}

func (s *RetailerService) MarkSold(ctx context.Context, productID string) (common.Hash, error) {
	if err := validateID("productId", productID); err != nil {
		return common.Hash{}, err
	}

	hash, err := s.ledger.SaleComplete(ctx, productID)
	if err != nil {
		return common.Hash{}, err
	}

	s.recordTx(hash, "saleComplete", productID)
	s.updateLocal(productID, func(p *products.Product) { p.Sold = true })
	s.recordActivity(registry.ActivityProductSold, productID, "Product "+productID+" sold")

	return hash, nil
}

// ShipBox ships a box directly, without going through its batch.
func (s *RetailerService) ShipBox(ctx context.Context, boxID string) (common.Hash, error) {
	if err := validateID("boxId", boxID); err != nil {
		return common.Hash{}, err
	}

	hash, err := s.ledger.ShipBox(ctx, boxID)
	if err != nil {
		return common.Hash{}, err
	}

	s.recordTx(hash, "shipBox", boxID)
	if err := s.markBoxShipped(boxID); err != nil {
		s.log.LogErrorf("failed to mark products of box %s shipped: %s", boxID, err)
	}
	s.markBatchesShipped(boxID)
	s.recordActivity(registry.ActivityBoxShipped, boxID, "Box "+boxID+" shipped")

	return hash, nil
}

func (s *RetailerService) markBatchesShipped(boxID string) {
	batches, err := s.registry.Batches.List()
	if err != nil {
		s.log.LogErrorf("failed to list batches: %s", err)
		return
	}
	for _, b := range batches {
		if b.BoxID != boxID || b.Shipped {
			continue
		}
		if _, err := s.registry.Batches.MarkShipped(b.BatchID); err != nil {
			s.log.LogErrorf("failed to mark batch %s shipped: %s", b.BatchID, err)
		}
	}
}
