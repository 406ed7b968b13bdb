package services

import (
	"context"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/registry"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
)

type ProductService struct {
	log      log.Logger
	ledger   ledger.Ledger
	registry *registry.Registry
}

func NewProductService(log log.Logger, l ledger.Ledger, reg *registry.Registry) interfaces.ProductService {
	return &ProductService{
		log:      log,
		ledger:   l,
		registry: reg,
	}
}

func (s *ProductService) LedgerAvailable() bool {
	return ledger.IsAvailable(s.ledger)
}

// GetProduct reads the product from the ledger. Products the ledger does not
// know, or all products while it is unavailable, are served from the registry.
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*products.Product, error) {
	onLedger, err := s.ledger.GetProduct(ctx, productID)
	if err == nil {
		return s.mergeLocal(onLedger), nil
	}
	if !ierrors.Is(err, products.ErrProductNotFound) && !ierrors.Is(err, ledger.ErrLedgerUnavailable) {
		return nil, err
	}

	local, localErr := s.registry.Products.Get(productID)
	if localErr != nil {
		if ierrors.Is(localErr, products.ErrProductNotFound) {
			return nil, err
		}
		return nil, localErr
	}

	return local, nil
}

// mergeLocal fills in what the contract does not store for batch registrations.
// Values present on the ledger always win.
func (s *ProductService) mergeLocal(p *products.Product) *products.Product {
	local, err := s.registry.Products.Get(p.ProductID)
	if err != nil {
		return p
	}

	merged := *p
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&merged.BoxID, local.BoxID},
		{&merged.Name, local.Name},
		{&merged.Category, local.Category},
		{&merged.Manufacturer, local.Manufacturer},
		{&merged.ManufacturerDate, local.ManufacturerDate},
		{&merged.ManufacturePlace, local.ManufacturePlace},
		{&merged.ModelNumber, local.ModelNumber},
		{&merged.SerialNumber, local.SerialNumber},
		{&merged.WarrantyPeriod, local.WarrantyPeriod},
		{&merged.BatchNumber, local.BatchNumber},
		{&merged.Color, local.Color},
		{&merged.Image, local.Image},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
	if merged.Price.Int().Sign() == 0 {
		merged.Price = local.Price
	}

	specs := local.ParsedSpecs()
	for k, v := range p.ParsedSpecs() {
		specs[k] = v
	}
	merged.Specs = specs.String()

	return &merged
}
