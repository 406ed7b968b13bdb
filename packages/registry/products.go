package registry

import (
	"sync"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"

	"github.com/trustchain/trustchain/packages/products"
)

// ProductRegistry mirrors products locally, indexed by ID and by box.
type ProductRegistry struct {
	mutex    sync.Mutex
	products kvstore.KVStore
	boxes    kvstore.KVStore
}

func NewProductRegistry(productStore, boxStore kvstore.KVStore) *ProductRegistry {
	return &ProductRegistry{
		products: productStore,
		boxes:    boxStore,
	}
}

func boxKey(boxID, productID string) []byte {
	key := make([]byte, 0, len(boxID)+len(productID)+1)
	key = append(key, boxID...)
	key = append(key, 0)

	return append(key, productID...)
}

func boxPrefix(boxID string) kvstore.KeyPrefix {
	return append([]byte(boxID), 0)
}

// Store saves all items, overwriting products with the same ID.
func (r *ProductRegistry) Store(items ...*products.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, item := range items {
		if err := save(r.products, []byte(item.ProductID), item); err != nil {
			return err
		}
		if err := r.boxes.Set(boxKey(item.BoxID, item.ProductID), []byte(item.ProductID)); err != nil {
			return err
		}
	}

	return nil
}

func (r *ProductRegistry) Get(productID string) (*products.Product, error) {
	p, err := load[products.Product](r.products, []byte(productID))
	if ierrors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ierrors.Wrapf(products.ErrProductNotFound, "product %s", productID)
	}

	return p, err
}

// Update applies modify to the stored product atomically.
func (r *ProductRegistry) Update(productID string, modify func(p *products.Product)) (*products.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, err := r.Get(productID)
	if err != nil {
		return nil, err
	}
	modify(p)

	return p, save(r.products, []byte(productID), p)
}

// ByBox returns the IDs of the products packed in boxID in key order.
func (r *ProductRegistry) ByBox(boxID string) ([]string, error) {
	ids := make([]string, 0)
	err := r.boxes.Iterate(boxPrefix(boxID), func(_ kvstore.Key, value kvstore.Value) bool {
		ids = append(ids, string(value))
		return true
	})

	return ids, err
}

func (r *ProductRegistry) Count() (int, error) {
	return count(r.products, kvstore.EmptyPrefix)
}

func (r *ProductRegistry) CountShipped() (int, error) {
	n := 0
	err := each(r.products, kvstore.EmptyPrefix, func(p *products.Product) bool {
		if p.Shipped {
			n++
		}
		return true
	})

	return n, err
}
