package registry

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/iotaledger/hive.go/kvstore"
)

// Transaction records a ledger transaction submitted by the node.
type Transaction struct {
	Hash      common.Hash `json:"hash"`
	Method    string      `json:"method"`
	Subject   string      `json:"subject"`
	CreatedAt time.Time   `json:"createdAt"`
}

type TransactionLog struct {
	store kvstore.KVStore
	clock func() time.Time
}

func NewTransactionLog(store kvstore.KVStore) *TransactionLog {
	return &TransactionLog{store: store, clock: time.Now}
}

func (l *TransactionLog) Add(hash common.Hash, method, subject string) error {
	return save(l.store, hash.Bytes(), &Transaction{
		Hash:      hash,
		Method:    method,
		Subject:   subject,
		CreatedAt: l.clock(),
	})
}

func (l *TransactionLog) Get(hash common.Hash) (*Transaction, error) {
	return load[Transaction](l.store, hash.Bytes())
}

func (l *TransactionLog) Count() (int, error) {
	return count(l.store, kvstore.EmptyPrefix)
}
