package ledger

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/testutil/testlogger"
)

// fakeCaller answers eth_call requests by decoding the calldata and packing the
// outputs from in-memory state.
type fakeCaller struct {
	products map[string]ProductRecord
	boxes    map[string][]string
	shipped  map[string]bool
	err      error
}

func (f *fakeCaller) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}

	method, err := ContractABI.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}
	key := args[0].(string)

	switch method.Name {
	case methodGetProduct:
		record, ok := f.products[key]
		if !ok {
			record = ProductRecord{Price: new(big.Int)}
		}
		return method.Outputs.Pack(record)
	case methodGetProductsByBox:
		return method.Outputs.Pack(f.boxes[key])
	case methodIsBoxShipped:
		return method.Outputs.Pack(f.shipped[key])
	default:
		return nil, errors.New("unexpected call to " + method.Name)
	}
}

func newTestLedger(t *testing.T, caller *fakeCaller) *EthLedger {
	return New(common.HexToAddress("0x1234"), caller, nil, nil, nil, testlogger.NewLogger(t))
}

func TestGetProductDecodesRecord(t *testing.T) {
	price, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	require.True(t, ok)

	caller := &fakeCaller{products: map[string]ProductRecord{
		"B1-1": {
			ProductId:          "B1-1",
			BoxId:              "BOX-1",
			Name:               "Watch",
			SerialNumber:       "B1-1",
			BatchNumber:        "B1",
			Specs:              `{"sealSeed":"aa"}`,
			Price:              price,
			Shipped:            true,
			VerifiedByRetailer: true,
		},
	}}
	l := newTestLedger(t, caller)

	p, err := l.GetProduct(context.Background(), "B1-1")
	require.NoError(t, err)
	require.Equal(t, "B1-1", p.ProductID)
	require.Equal(t, "BOX-1", p.BoxID)
	require.Equal(t, "Watch", p.Name)
	require.Equal(t, price.String(), p.Price.String())
	require.Equal(t, "aa", p.ParsedSpecs().SealSeed())
	require.True(t, p.Shipped)
	require.True(t, p.VerifiedByRetailer)
	require.False(t, p.Sold)
}

func TestGetProductNotFound(t *testing.T) {
	l := newTestLedger(t, &fakeCaller{})

	_, err := l.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, products.ErrProductNotFound)

	l = newTestLedger(t, &fakeCaller{err: errors.New("execution reverted: Product not found")})
	_, err = l.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, products.ErrProductNotFound)

	httpErr := errors.New("404 Not Found: 404 page not found")
	l = newTestLedger(t, &fakeCaller{err: httpErr})
	_, err = l.GetProduct(context.Background(), "B1-1")
	require.ErrorIs(t, err, httpErr)
	require.NotErrorIs(t, err, products.ErrProductNotFound)

	rpcErr := errors.New("connection refused")
	l = newTestLedger(t, &fakeCaller{err: rpcErr})
	_, err = l.GetProduct(context.Background(), "B1-1")
	require.ErrorIs(t, err, rpcErr)
	require.NotErrorIs(t, err, products.ErrProductNotFound)
}

func TestBoxQueries(t *testing.T) {
	l := newTestLedger(t, &fakeCaller{
		boxes:   map[string][]string{"BOX-1": {"B1-1", "B1-2"}},
		shipped: map[string]bool{"BOX-1": true},
	})

	ids, err := l.GetProductsByBox(context.Background(), "BOX-1")
	require.NoError(t, err)
	require.Equal(t, []string{"B1-1", "B1-2"}, ids)

	ids, err = l.GetProductsByBox(context.Background(), "BOX-2")
	require.NoError(t, err)
	require.Empty(t, ids)

	shipped, err := l.IsBoxShipped(context.Background(), "BOX-1")
	require.NoError(t, err)
	require.True(t, shipped)

	shipped, err = l.IsBoxShipped(context.Background(), "BOX-2")
	require.NoError(t, err)
	require.False(t, shipped)
}

func TestTransactionsRequireKey(t *testing.T) {
	l := newTestLedger(t, &fakeCaller{})

	_, err := l.ShipBox(context.Background(), "BOX-1")
	require.ErrorIs(t, err, ErrReadOnly)

	_, err = l.RegisterBatchProducts(context.Background(), &BatchRegistration{BatchID: "B1", BoxID: "BOX-1"})
	require.ErrorIs(t, err, ErrReadOnly)
}

func TestTuplesPackAgainstABI(t *testing.T) {
	_, err := ContractABI.Pack(methodRegisterBatchProducts, batchTuple{
		BatchId:    "B1",
		BoxId:      "BOX-1",
		ProductIds: []string{"B1-1", "B1-2"},
	})
	require.NoError(t, err)

	p := &products.Product{ProductID: "B1-1", Price: products.PriceFromUint64(5)}
	_, err = ContractABI.Pack(methodRegisterProduct, newProductInputTuple(p))
	require.NoError(t, err)

	record := NewProductRecord(p)
	require.Equal(t, "B1-1", record.toProduct().ProductID)
	require.Equal(t, "5", record.toProduct().Price.String())
}

func TestParsePrivateKey(t *testing.T) {
	const hexKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

	key, err := ParsePrivateKey("0x" + hexKey)
	require.NoError(t, err)
	key2, err := ParsePrivateKey(hexKey)
	require.NoError(t, err)
	require.True(t, key.Equal(key2))

	_, err = ParsePrivateKey("")
	require.Error(t, err)
	_, err = ParsePrivateKey("0xnothex")
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	const hexKey = "0xb71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
	const address = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

	require.NoError(t, ValidateConfig(address, hexKey))
	require.ErrorIs(t, ValidateConfig("", hexKey), ErrInvalidConfig)
	require.ErrorIs(t, ValidateConfig("0x1234", hexKey), ErrInvalidConfig)
	require.ErrorIs(t, ValidateConfig(address, ""), ErrInvalidConfig)

	// rejected before any connection attempt
	_, _, err := Dial(context.Background(), "http://127.0.0.1:1", "", hexKey, 0, testlogger.NewLogger(t))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUnavailable(t *testing.T) {
	var l Ledger = NewUnavailable("ledger disabled")
	require.False(t, IsAvailable(l))
	require.True(t, IsAvailable(newTestLedger(t, &fakeCaller{})))

	_, err := l.GetProduct(context.Background(), "B1-1")
	require.ErrorIs(t, err, ErrLedgerUnavailable)
	_, err = l.SaleComplete(context.Background(), "B1-1")
	require.ErrorIs(t, err, ErrLedgerUnavailable)
	_, err = l.GetProductsByBox(context.Background(), "BOX")
	require.ErrorIs(t, err, ErrLedgerUnavailable)
}
