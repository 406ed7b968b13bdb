package ledger

import (
	_ "embed"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/trustchain/trustchain/packages/products"
)

//go:embed trustchain.abi.json
var contractABIJSON string

// ContractABI is the parsed ABI of the TrustChain contract.
var ContractABI = mustParseABI(contractABIJSON)

func mustParseABI(data string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(data))
	if err != nil {
		panic(err)
	}

	return parsed
}

const (
	methodRegisterBatchProducts = "registerBatchProducts"
	methodRegisterProduct       = "registerProduct"
	methodShipBox               = "shipBox"
	methodVerifyRetailer        = "verifyRetailer"
	methodSaleComplete          = "saleComplete"
	methodGetProduct            = "getProduct"
	methodGetProductsByBox      = "getProductsByBox"
	methodIsBoxShipped          = "isBoxShipped"
)

// The tuple types below are packed and unpacked by field name and position,
// so both have to follow the ABI exactly.

//nolint:revive,stylecheck
type batchTuple struct {
	BatchId    string
	BoxId      string
	ProductIds []string
}

//nolint:revive,stylecheck
type productInputTuple struct {
	ProductId        string
	BoxId            string
	Name             string
	Category         string
	Manufacturer     string
	ManufacturerDate string
	ManufacturePlace string
	ModelNumber      string
	SerialNumber     string
	WarrantyPeriod   string
	BatchNumber      string
	Color            string
	Specs            string
	Price            *big.Int
	Image            string
}

// ProductRecord is the product struct returned by getProduct.
//
//nolint:revive,stylecheck
type ProductRecord struct {
	ProductId          string
	BoxId              string
	Name               string
	Category           string
	Manufacturer       string
	ManufacturerDate   string
	ManufacturePlace   string
	ModelNumber        string
	SerialNumber       string
	WarrantyPeriod     string
	BatchNumber        string
	Color              string
	Specs              string
	Price              *big.Int
	Image              string
	Shipped            bool
	VerifiedByRetailer bool
	VerifiedBySystem   bool
	Sold               bool
}

func (r *ProductRecord) toProduct() *products.Product {
	return &products.Product{
		ProductID:          r.ProductId,
		BoxID:              r.BoxId,
		Name:               r.Name,
		Category:           r.Category,
		Manufacturer:       r.Manufacturer,
		ManufacturerDate:   r.ManufacturerDate,
		ManufacturePlace:   r.ManufacturePlace,
		ModelNumber:        r.ModelNumber,
		SerialNumber:       r.SerialNumber,
		WarrantyPeriod:     r.WarrantyPeriod,
		BatchNumber:        r.BatchNumber,
		Color:              r.Color,
		Specs:              r.Specs,
		Price:              products.NewPrice(r.Price),
		Image:              r.Image,
		Shipped:            r.Shipped,
		VerifiedByRetailer: r.VerifiedByRetailer,
		VerifiedBySystem:   r.VerifiedBySystem,
		Sold:               r.Sold,
	}
}

// NewProductRecord converts a product into its on-chain representation.
func NewProductRecord(p *products.Product) ProductRecord {
	return ProductRecord{
		ProductId:          p.ProductID,
		BoxId:              p.BoxID,
		Name:               p.Name,
		Category:           p.Category,
		Manufacturer:       p.Manufacturer,
		ManufacturerDate:   p.ManufacturerDate,
		ManufacturePlace:   p.ManufacturePlace,
		ModelNumber:        p.ModelNumber,
		SerialNumber:       p.SerialNumber,
		WarrantyPeriod:     p.WarrantyPeriod,
		BatchNumber:        p.BatchNumber,
		Color:              p.Color,
		Specs:              p.Specs,
		Price:              p.Price.Int(),
		Image:              p.Image,
		Shipped:            p.Shipped,
		VerifiedByRetailer: p.VerifiedByRetailer,
		VerifiedBySystem:   p.VerifiedBySystem,
		Sold:               p.Sold,
	}
}

func newProductInputTuple(p *products.Product) productInputTuple {
	return productInputTuple{
		ProductId:        p.ProductID,
		BoxId:            p.BoxID,
		Name:             p.Name,
		Category:         p.Category,
		Manufacturer:     p.Manufacturer,
		ManufacturerDate: p.ManufacturerDate,
		ManufacturePlace: p.ManufacturePlace,
		ModelNumber:      p.ModelNumber,
		SerialNumber:     p.SerialNumber,
		WarrantyPeriod:   p.WarrantyPeriod,
		BatchNumber:      p.BatchNumber,
		Color:            p.Color,
		Specs:            p.Specs,
		Price:            p.Price.Int(),
		Image:            p.Image,
	}
}
