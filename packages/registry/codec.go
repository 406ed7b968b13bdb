package registry

import (
	"encoding/json"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

func load[T any](store kvstore.KVStore, key []byte) (*T, error) {
	data, err := store.Get(key)
	if err != nil {
		return nil, err
	}

	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, ierrors.Wrapf(err, "failed to decode %q", key)
	}

	return v, nil
}

func save[T any](store kvstore.KVStore, key []byte, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return ierrors.Wrapf(err, "failed to encode %q", key)
	}

	return store.Set(key, data)
}

// each decodes every value under prefix and hands it to consumer until it returns false.
func each[T any](store kvstore.KVStore, prefix kvstore.KeyPrefix, consumer func(v *T) bool) error {
	var decodeErr error
	if err := store.Iterate(prefix, func(key kvstore.Key, value kvstore.Value) bool {
		v := new(T)
		if err := json.Unmarshal(value, v); err != nil {
			decodeErr = ierrors.Wrapf(err, "failed to decode %q", key)
			return false
		}

		return consumer(v)
	}); err != nil {
		return err
	}

	return decodeErr
}

func count(store kvstore.KVStore, prefix kvstore.KeyPrefix) (int, error) {
	n := 0
	err := store.IterateKeys(prefix, func(kvstore.Key) bool {
		n++
		return true
	})

	return n, err
}
