package products

import (
	"strings"

	"github.com/samber/lo"

	"github.com/iotaledger/hive.go/ierrors"
)

// Provisioner produces the initial specs of a freshly derived product,
// typically its seal seed and the address of its NFC chip.
type Provisioner func(productID string) (Specs, error)

// PrepareBatch derives the products of a batch. Product IDs and serial numbers are
// "<batchId>-<n>" for n in 1..batchSize, in that order.
func PrepareBatch(batch *Batch, provision Provisioner) ([]*Product, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	items := make([]*Product, 0, batch.BatchSize)
	for i := 1; i <= batch.BatchSize; i++ {
		productID := ProductID(batch.BatchID, i)

		specs := Specs{}
		if provision != nil {
			var err error
			if specs, err = provision(productID); err != nil {
				return nil, ierrors.Wrapf(err, "failed to provision product %s", productID)
			}
		}

		items = append(items, &Product{
			ProductID:        productID,
			BoxID:            batch.BoxID,
			Name:             batch.Name,
			Category:         batch.Category,
			Manufacturer:     batch.Manufacturer,
			ManufacturerDate: batch.ManufacturerDate,
			ManufacturePlace: batch.ManufacturePlace,
			ModelNumber:      batch.ModelNumber,
			SerialNumber:     productID,
			WarrantyPeriod:   batch.WarrantyPeriod,
			BatchNumber:      batch.BatchID,
			Color:            batch.Color,
			Specs:            specs.String(),
			Price:            NewPrice(batch.Price.Int()),
			Image:            batch.Image,
		})
	}

	return items, nil
}

// PrepareProduct returns a copy of a single product ready for registration. The
// serial number defaults to the product ID, provisioned specs are merged over the
// given ones and the lifecycle flags are cleared.
func PrepareProduct(product *Product, provision Provisioner) (*Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	prepared := *product
	prepared.ProductID = strings.TrimSpace(product.ProductID)
	prepared.BoxID = strings.TrimSpace(product.BoxID)
	if strings.TrimSpace(prepared.SerialNumber) == "" {
		prepared.SerialNumber = prepared.ProductID
	}
	prepared.Price = NewPrice(product.Price.Int())
	prepared.Shipped = false
	prepared.VerifiedByRetailer = false
	prepared.VerifiedBySystem = false
	prepared.Sold = false

	specs := product.ParsedSpecs()
	if provision != nil {
		provisioned, err := provision(prepared.ProductID)
		if err != nil {
			return nil, ierrors.Wrapf(err, "failed to provision product %s", prepared.ProductID)
		}
		for k, v := range provisioned {
			specs[k] = v
		}
	}
	prepared.Specs = specs.String()

	return &prepared, nil
}

// ProductIDs returns the IDs of the given products in order.
func ProductIDs(items []*Product) []string {
	return lo.Map(items, func(item *Product, _ int) string { return item.ProductID })
}
