package interfaces

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pangpanglabs/echoswagger/v2"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/registry"
	"github.com/trustchain/trustchain/packages/seal"
	"github.com/trustchain/trustchain/packages/users"
)

type APIController interface {
	Name() string
	RegisterPublic(publicAPI echoswagger.ApiGroup)
	// RegisterProtected adds routes that require a valid session token.
	RegisterProtected(protectedAPI echoswagger.ApiGroup)
}

type AuthService interface {
	SignUp(id, email, password string) (*users.User, error)
	Login(role users.Role, id, password string) (string, error)
}

type Stats struct {
	TotalBatches      int
	TotalProducts     int
	TotalShipped      int
	TotalTransactions int
}

type ManufacturerService interface {
	Stats() (*Stats, error)
	Activity(limit int) ([]*registry.Activity, error)
	Batches() ([]*products.Batch, error)
	PrepareBatch(batch *products.Batch) ([]*products.Product, error)
	RegisterBatch(ctx context.Context, batch *products.Batch) (*common.Hash, []*products.Product, error)
	RegisterProduct(ctx context.Context, product *products.Product) (*common.Hash, *products.Product, error)
	ShipBatch(ctx context.Context, batchID string) (*products.Batch, *common.Hash, error)
}

// BoxEntry is a product of a box, or the error that prevented fetching it.
type BoxEntry struct {
	ProductID string
	Product   *products.Product
	Err       error
}

type TxResult struct {
	ProductID string
	TxHash    common.Hash
	Err       error
}

type SealCheck struct {
	Result  seal.Result
	Product *products.Product
}

type RetailerService interface {
	Box(ctx context.Context, boxID string) ([]*BoxEntry, error)
	IsBoxShipped(ctx context.Context, boxID string) (bool, error)
	VerifyBox(ctx context.Context, boxID string) ([]*TxResult, error)
	VerifyProduct(ctx context.Context, productID string) (common.Hash, error)
	VerifySeal(ctx context.Context, productID, code string) (*SealCheck, error)
	MarkSold(ctx context.Context, productID string) (common.Hash, error)
	ShipBox(ctx context.Context, boxID string) (common.Hash, error)
}

type ProductService interface {
	GetProduct(ctx context.Context, productID string) (*products.Product, error)
	LedgerAvailable() bool
}

type ChipCheck struct {
	Authentic bool
	Signer    common.Address
}

type VerificationService interface {
	Provision(productID string) (products.Specs, error)
	RequestChallenge(ctx context.Context, productID string) (string, time.Duration, error)
	VerifyResponse(ctx context.Context, productID, response string) (*ChipCheck, error)
	EmulatorEnabled() bool
	Emulate(productID, challenge string) (string, common.Address, error)
}
