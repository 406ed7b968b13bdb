package database

import (
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
)

type MapDB struct {
	store kvstore.KVStore
}

var _ DB = &MapDB{}

func NewMapDB() *MapDB {
	return &MapDB{store: mapdb.NewMapDB()}
}

// NewStore returns the same in-memory store on every call.
func (db *MapDB) NewStore() kvstore.KVStore {
	return db.store
}

func (db *MapDB) Close() error {
	return nil
}
