package registry

import (
	"encoding/binary"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/iotaledger/hive.go/kvstore"
)

type ActivityKind string

const (
	ActivityBatchRegistered   ActivityKind = "batch_registered"
	ActivityProductRegistered ActivityKind = "product_registered"
	ActivityBoxShipped        ActivityKind = "box_shipped"
	ActivityProductVerified   ActivityKind = "product_verified"
	ActivityProductSold       ActivityKind = "product_sold"
)

type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ActivityLog is an append-only log of lifecycle events.
type ActivityLog struct {
	store kvstore.KVStore
	clock func() time.Time
}

func NewActivityLog(store kvstore.KVStore) *ActivityLog {
	return &ActivityLog{store: store, clock: time.Now}
}

// keys sort by creation time
func timeKey(t time.Time, id uuid.UUID) []byte {
	key := make([]byte, 8, 8+len(id))
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))

	return append(key, id[:]...)
}

func (l *ActivityLog) Add(kind ActivityKind, subject, message string) (*Activity, error) {
	id := uuid.New()
	entry := &Activity{
		ID:        id.String(),
		Kind:      kind,
		Subject:   subject,
		Message:   message,
		CreatedAt: l.clock(),
	}

	return entry, save(l.store, timeKey(entry.CreatedAt, id), entry)
}

// Latest returns up to n entries, newest first.
func (l *ActivityLog) Latest(n int) ([]*Activity, error) {
	entries := make([]*Activity, 0)
	if err := each(l.store, kvstore.EmptyPrefix, func(a *Activity) bool {
		entries = append(entries, a)
		return true
	}); err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b *Activity) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}

	return entries, nil
}
