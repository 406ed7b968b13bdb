package ledger

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"

	"github.com/trustchain/trustchain/packages/products"
)

const (
	DefaultCallTimeout    = 15 * time.Second
	DefaultReceiptTimeout = 2 * time.Minute
)

// EthLedger is the Ledger implementation backed by a go-ethereum client.
type EthLedger struct {
	log      log.Logger
	address  common.Address
	contract *bind.BoundContract
	receipts bind.DeployBackend
	auth     *bind.TransactOpts

	// serializes submissions from the node wallet so that nonces do not collide
	txMutex sync.Mutex

	callTimeout    time.Duration
	receiptTimeout time.Duration
	observer       Observer
}

var _ Ledger = &EthLedger{}

// New binds the contract at address. transactor, receipts and auth may be nil for
// a read-only client.
func New(
	address common.Address,
	caller bind.ContractCaller,
	transactor bind.ContractTransactor,
	receipts bind.DeployBackend,
	auth *bind.TransactOpts,
	log log.Logger,
	opts ...options.Option[EthLedger],
) *EthLedger {
	return options.Apply(&EthLedger{
		log:            log,
		address:        address,
		contract:       bind.NewBoundContract(address, ContractABI, caller, transactor, nil),
		receipts:       receipts,
		auth:           auth,
		callTimeout:    DefaultCallTimeout,
		receiptTimeout: DefaultReceiptTimeout,
	}, opts)
}

func WithCallTimeout(timeout time.Duration) options.Option[EthLedger] {
	return func(l *EthLedger) {
		if timeout > 0 {
			l.callTimeout = timeout
		}
	}
}

func WithReceiptTimeout(timeout time.Duration) options.Option[EthLedger] {
	return func(l *EthLedger) {
		if timeout > 0 {
			l.receiptTimeout = timeout
		}
	}
}

func WithObserver(observer Observer) options.Option[EthLedger] {
	return func(l *EthLedger) {
		l.observer = observer
	}
}

// ParsePrivateKey parses a hex encoded secp256k1 key with or without 0x prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, ierrors.New("private key is empty")
	}

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, ierrors.Wrap(err, "invalid private key")
	}

	return key, nil
}

// ValidateConfig checks the parts of the connection settings that retrying cannot fix.
func ValidateConfig(contractAddress string, privateKey string) error {
	if !common.IsHexAddress(contractAddress) {
		return ierrors.Wrapf(ErrInvalidConfig, "invalid contract address %q", contractAddress)
	}
	if _, err := ParsePrivateKey(privateKey); err != nil {
		return ierrors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}

// Dial connects to the JSON-RPC endpoint at rpcURL and binds the contract. If chainID
// is zero it is queried from the node. The returned function closes the connection.
func Dial(
	ctx context.Context,
	rpcURL string,
	contractAddress string,
	privateKey string,
	chainID uint64,
	log log.Logger,
	opts ...options.Option[EthLedger],
) (*EthLedger, func(), error) {
	if err := ValidateConfig(contractAddress, privateKey); err != nil {
		return nil, nil, err
	}

	key, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, nil, err
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, ierrors.Wrapf(err, "failed to connect to %s", rpcURL)
	}

	id := new(big.Int).SetUint64(chainID)
	if chainID == 0 {
		if id, err = client.ChainID(ctx); err != nil {
			client.Close()
			return nil, nil, ierrors.Wrap(err, "failed to query chain id")
		}
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, id)
	if err != nil {
		client.Close()
		return nil, nil, ierrors.Wrap(err, "failed to create transactor")
	}

	code, err := client.CodeAt(ctx, common.HexToAddress(contractAddress), nil)
	if err != nil {
		client.Close()
		return nil, nil, ierrors.Wrap(err, "failed to query contract code")
	}
	if len(code) == 0 {
		client.Close()
		return nil, nil, ierrors.Errorf("no contract deployed at %s", contractAddress)
	}

	log.LogInfof("connected to chain %s, contract %s, wallet %s", id, contractAddress, auth.From.Hex())

	return New(common.HexToAddress(contractAddress), client, client, client, auth, log, opts...), client.Close, nil
}

func (l *EthLedger) Address() common.Address {
	return l.address
}

// From returns the wallet address transactions are sent from.
func (l *EthLedger) From() common.Address {
	if l.auth == nil {
		return common.Address{}
	}

	return l.auth.From
}

func (l *EthLedger) RegisterBatchProducts(ctx context.Context, batch *BatchRegistration) (common.Hash, error) {
	return l.transact(ctx, methodRegisterBatchProducts, batchTuple{
		BatchId:    batch.BatchID,
		BoxId:      batch.BoxID,
		ProductIds: batch.ProductIDs,
	})
}

func (l *EthLedger) RegisterProduct(ctx context.Context, product *products.Product) (common.Hash, error) {
	return l.transact(ctx, methodRegisterProduct, newProductInputTuple(product))
}

func (l *EthLedger) ShipBox(ctx context.Context, boxID string) (common.Hash, error) {
	return l.transact(ctx, methodShipBox, boxID)
}

func (l *EthLedger) VerifyRetailer(ctx context.Context, productID string) (common.Hash, error) {
	return l.transact(ctx, methodVerifyRetailer, productID)
}

func (l *EthLedger) SaleComplete(ctx context.Context, productID string) (common.Hash, error) {
	return l.transact(ctx, methodSaleComplete, productID)
}

func (l *EthLedger) GetProduct(ctx context.Context, productID string) (*products.Product, error) {
	out, err := l.call(ctx, methodGetProduct, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, ierrors.Wrapf(products.ErrProductNotFound, "product %s", productID)
		}

		return nil, err
	}

	record := *abi.ConvertType(out[0], new(ProductRecord)).(*ProductRecord)
	if record.ProductId == "" {
		return nil, ierrors.Wrapf(products.ErrProductNotFound, "product %s", productID)
	}

	return record.toProduct(), nil
}

func (l *EthLedger) GetProductsByBox(ctx context.Context, boxID string) ([]string, error) {
	out, err := l.call(ctx, methodGetProductsByBox, boxID)
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new([]string)).(*[]string), nil
}

func (l *EthLedger) IsBoxShipped(ctx context.Context, boxID string) (bool, error) {
	out, err := l.call(ctx, methodIsBoxShipped, boxID)
	if err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (l *EthLedger) call(ctx context.Context, method string, params ...any) ([]any, error) {
	ctx, cancel := context.WithTimeout(ctx, l.callTimeout)
	defer cancel()

	var out []any
	if err := l.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, ierrors.Wrapf(err, "%s call failed", method)
	}
	if len(out) == 0 {
		return nil, ierrors.Errorf("%s returned no values", method)
	}

	return out, nil
}

func (l *EthLedger) transact(ctx context.Context, method string, params ...any) (common.Hash, error) {
	if l.auth == nil {
		return common.Hash{}, ErrReadOnly
	}

	start := time.Now()
	txHash, err := l.sendAndWait(ctx, method, params...)
	if l.observer != nil {
		l.observer.ObserveTransaction(method, err, time.Since(start))
	}
	if err != nil {
		l.log.LogWarnf("%s failed: %s", method, err)
		return txHash, err
	}
	l.log.LogDebugf("%s mined in tx %s", method, txHash.Hex())

	return txHash, nil
}

func (l *EthLedger) send(ctx context.Context, method string, params ...any) (*types.Transaction, error) {
	l.txMutex.Lock()
	defer l.txMutex.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.callTimeout)
	defer cancel()

	opts := *l.auth
	opts.Context = ctx

	tx, err := l.contract.Transact(&opts, method, params...)
	if err != nil {
		// gas estimation already runs into the contract's require checks
		if isRevert(err) {
			return nil, ierrors.Wrapf(ErrTransactionReverted, "%s: %s", method, err)
		}
		return nil, ierrors.Wrapf(err, "%s transaction failed", method)
	}

	return tx, nil
}

func (l *EthLedger) sendAndWait(ctx context.Context, method string, params ...any) (common.Hash, error) {
	tx, err := l.send(ctx, method, params...)
	if err != nil {
		return common.Hash{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.receiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(ctx, l.receipts, tx)
	if err != nil {
		return tx.Hash(), ierrors.Wrapf(err, "waiting for %s receipt failed", method)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return tx.Hash(), ierrors.Wrapf(ErrTransactionReverted, "%s in tx %s", method, tx.Hash().Hex())
	}

	return tx.Hash(), nil
}

// isNotFound reports a contract revert for an unknown product. Transport errors
// mentioning "not found" do not count.
func isNotFound(err error) bool {
	return isRevert(err) && strings.Contains(strings.ToLower(err.Error()), "not found")
}

func isRevert(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "execution reverted")
}
