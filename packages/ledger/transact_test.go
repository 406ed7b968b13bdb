package ledger

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/testutil/testlogger"
)

// fakeBackend plays the node side of a transaction: gas estimation, submission
// and receipts. Receipts carry receiptStatus, or never show up if pending is set.
type fakeBackend struct {
	mutex         sync.Mutex
	estimateErr   error
	receiptStatus uint64
	pending       bool
	nonce         uint64
	sent          []string
}

var (
	_ bind.ContractTransactor = &fakeBackend{}
	_ bind.DeployBackend      = &fakeBackend{}
)

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	// no base fee, so legacy transactions are built
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (f *fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.nonce, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	if f.estimateErr != nil {
		return 0, f.estimateErr
	}

	return 100_000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	method, err := ContractABI.MethodById(tx.Data()[:4])
	if err != nil {
		return err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.sent = append(f.sent, method.Name)
	f.nonce++

	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	if f.pending {
		return nil, ethereum.NotFound
	}

	return &types.Receipt{TxHash: txHash, Status: f.receiptStatus}, nil
}

func (f *fakeBackend) Sent() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]string(nil), f.sent...)
}

type observed struct {
	method string
	err    error
}

type fakeObserver struct {
	calls []observed
}

func (o *fakeObserver) ObserveTransaction(method string, err error, _ time.Duration) {
	o.calls = append(o.calls, observed{method: method, err: err})
}

func newSigningLedger(t *testing.T, backend *fakeBackend, observer Observer) *EthLedger {
	key, err := ParsePrivateKey("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	require.NoError(t, err)
	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(1337))
	require.NoError(t, err)

	return New(common.HexToAddress("0x1234"), &fakeCaller{}, backend, backend, auth, testlogger.NewLogger(t),
		WithObserver(observer),
		WithReceiptTimeout(50*time.Millisecond),
	)
}

func TestTransactMined(t *testing.T) {
	backend := &fakeBackend{receiptStatus: types.ReceiptStatusSuccessful}
	observer := &fakeObserver{}
	l := newSigningLedger(t, backend, observer)

	shipHash, err := l.ShipBox(context.Background(), "BOX-1")
	require.NoError(t, err)
	require.NotEqual(t, common.Hash{}, shipHash)

	registerHash, err := l.RegisterProduct(context.Background(), &products.Product{
		ProductID: "P1",
		BoxID:     "BOX-1",
		Price:     products.PriceFromUint64(65000),
	})
	require.NoError(t, err)
	require.NotEqual(t, shipHash, registerHash, "nonces advance")

	require.Equal(t, []string{methodShipBox, methodRegisterProduct}, backend.Sent())
	require.Equal(t, []observed{{method: methodShipBox}, {method: methodRegisterProduct}}, observer.calls)
}

func TestTransactRevertedReceipt(t *testing.T) {
	backend := &fakeBackend{receiptStatus: types.ReceiptStatusFailed}
	observer := &fakeObserver{}
	l := newSigningLedger(t, backend, observer)

	hash, err := l.VerifyRetailer(context.Background(), "B1-1")
	require.ErrorIs(t, err, ErrTransactionReverted)
	require.NotEqual(t, common.Hash{}, hash, "the mined transaction is reported")
	require.Equal(t, []string{methodVerifyRetailer}, backend.Sent())

	require.Len(t, observer.calls, 1)
	require.Equal(t, methodVerifyRetailer, observer.calls[0].method)
	require.ErrorIs(t, observer.calls[0].err, ErrTransactionReverted)
}

func TestTransactRevertedEstimate(t *testing.T) {
	backend := &fakeBackend{estimateErr: errors.New("execution reverted: Box already shipped")}
	observer := &fakeObserver{}
	l := newSigningLedger(t, backend, observer)

	hash, err := l.ShipBox(context.Background(), "BOX-1")
	require.ErrorIs(t, err, ErrTransactionReverted)
	require.Equal(t, common.Hash{}, hash)
	require.Empty(t, backend.Sent())

	require.Len(t, observer.calls, 1)
	require.ErrorIs(t, observer.calls[0].err, ErrTransactionReverted)
}

func TestTransactEstimateFailure(t *testing.T) {
	rpcErr := errors.New("connection refused")
	l := newSigningLedger(t, &fakeBackend{estimateErr: rpcErr}, &fakeObserver{})

	_, err := l.SaleComplete(context.Background(), "B1-1")
	require.ErrorIs(t, err, rpcErr)
	require.NotErrorIs(t, err, ErrTransactionReverted)
}

func TestTransactReceiptDeadline(t *testing.T) {
	backend := &fakeBackend{pending: true}
	observer := &fakeObserver{}
	l := newSigningLedger(t, backend, observer)

	hash, err := l.RegisterBatchProducts(context.Background(), &BatchRegistration{
		BatchID:    "B1",
		BoxID:      "BOX-1",
		ProductIDs: []string{"B1-1", "B1-2"},
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotErrorIs(t, err, ErrTransactionReverted)
	require.NotEqual(t, common.Hash{}, hash)
	require.Equal(t, []string{methodRegisterBatchProducts}, backend.Sent())

	require.Len(t, observer.calls, 1)
	require.Error(t, observer.calls[0].err)
}
