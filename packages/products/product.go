package products

import (
	"fmt"
	"strings"

	"github.com/iotaledger/hive.go/ierrors"
)

var (
	ErrProductNotFound = ierrors.New("product not found")
	ErrProductExists   = ierrors.New("product already exists")
	ErrInvalidProduct  = ierrors.New("invalid product data")
	ErrBoxShipped      = ierrors.New("box already shipped")
)

// Product is a single item as recorded on the ledger and mirrored in the registry.
type Product struct {
	ProductID          string `json:"productId"`
	BoxID              string `json:"boxId"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	Manufacturer       string `json:"manufacturer"`
	ManufacturerDate   string `json:"manufacturerDate"`
	ManufacturePlace   string `json:"manufacturePlace"`
	ModelNumber        string `json:"modelNumber"`
	SerialNumber       string `json:"serialNumber"`
	WarrantyPeriod     string `json:"warrantyPeriod"`
	BatchNumber        string `json:"batchNumber"`
	Color              string `json:"color"`
	Specs              string `json:"specs"`
	Price              Price  `json:"price"`
	Image              string `json:"image"`
	Shipped            bool   `json:"shipped"`
	VerifiedByRetailer bool   `json:"verifiedByRetailer"`
	VerifiedBySystem   bool   `json:"verifiedBySystem"`
	Sold               bool   `json:"sold"`
}

// ProductID derives the ID of the index-th (1-based) product of a batch.
func ProductID(batchID string, index int) string {
	return fmt.Sprintf("%s-%d", batchID, index)
}

// Validate checks the fields required to register a single product.
func (p *Product) Validate() error {
	switch {
	case p == nil:
		return ErrInvalidProduct
	case strings.TrimSpace(p.ProductID) == "":
		return ierrors.Wrap(ErrInvalidProduct, "productId is required")
	case strings.TrimSpace(p.BoxID) == "":
		return ierrors.Wrap(ErrInvalidProduct, "boxId is required")
	case strings.ContainsRune(p.ProductID, '|'):
		return ierrors.Wrap(ErrInvalidProduct, "productId must not contain '|'")
	}
	if _, err := ParseSpecs(p.Specs); err != nil {
		return ierrors.Wrap(ErrInvalidProduct, err.Error())
	}

	return nil
}

// ParsedSpecs returns the product specs, or empty specs if they cannot be parsed.
func (p *Product) ParsedSpecs() Specs {
	specs, err := ParseSpecs(p.Specs)
	if err != nil {
		return Specs{}
	}

	return specs
}
