package products

import (
	"strings"
	"time"

	"github.com/iotaledger/hive.go/ierrors"
)

var (
	ErrInvalidBatch  = ierrors.New("invalid batch data")
	ErrBatchNotFound = ierrors.New("batch not found")
	ErrBatchExists   = ierrors.New("batch already exists")
	ErrBatchShipped  = ierrors.New("batch already shipped")
	ErrBoxInUse      = ierrors.New("box already in use")
)

// MaxBatchSize bounds the number of products derived from a single batch.
const MaxBatchSize = 10000

// Batch is a manufacturing lot. All products of a batch travel in the same box.
type Batch struct {
	BatchID          string    `json:"batchId"`
	BoxID            string    `json:"boxId"`
	BatchSize        int       `json:"batchSize"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Manufacturer     string    `json:"manufacturer"`
	ManufacturerDate string    `json:"manufacturerDate"`
	ManufacturePlace string    `json:"manufacturePlace"`
	ModelNumber      string    `json:"modelNumber"`
	WarrantyPeriod   string    `json:"warrantyPeriod"`
	Color            string    `json:"color"`
	Image            string    `json:"image"`
	Price            Price     `json:"price"`
	Shipped          bool      `json:"shipped"`
	CreatedAt        time.Time `json:"createdAt"`
	TxHash           string    `json:"txHash,omitempty"`
}

// Validate checks the fields required to derive product IDs.
func (b *Batch) Validate() error {
	switch {
	case b == nil:
		return ErrInvalidBatch
	case strings.TrimSpace(b.BatchID) == "":
		return ierrors.Wrap(ErrInvalidBatch, "batchId is required")
	case strings.TrimSpace(b.BoxID) == "":
		return ierrors.Wrap(ErrInvalidBatch, "boxId is required")
	case b.BatchSize <= 0:
		return ierrors.Wrap(ErrInvalidBatch, "batchSize must be positive")
	case b.BatchSize > MaxBatchSize:
		return ierrors.Wrapf(ErrInvalidBatch, "batchSize must not exceed %d", MaxBatchSize)
	case strings.ContainsRune(b.BatchID, '|'):
		// '|' separates seal digest fields
		return ierrors.Wrap(ErrInvalidBatch, "batchId must not contain '|'")
	}

	return nil
}
