package models

import (
	"time"

	"github.com/samber/lo"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/registry"
)

type StatsResponse struct {
	TotalBatches      int `json:"totalBatches" swagger:"desc(Number of registered batches),required"`
	TotalProducts     int `json:"totalProducts" swagger:"desc(Number of registered products),required"`
	TotalShipped      int `json:"totalShipped" swagger:"desc(Number of shipped products),required"`
	TotalTransactions int `json:"totalTransactions" swagger:"desc(Number of ledger transactions sent by this node),required"`
}

type ActivityResponse struct {
	Kind      string    `json:"kind" swagger:"desc(The kind of the event),required"`
	Subject   string    `json:"subject" swagger:"desc(The batch, box or product the event is about),required"`
	Message   string    `json:"message" swagger:"desc(Human readable description),required"`
	CreatedAt time.Time `json:"createdAt" swagger:"desc(When the event happened),required"`
}

func MapActivityResponse(entries []*registry.Activity) []*ActivityResponse {
	return lo.Map(entries, func(a *registry.Activity, _ int) *ActivityResponse {
		return &ActivityResponse{
			Kind:      string(a.Kind),
			Subject:   a.Subject,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		}
	})
}

type PrepareBatchResponse struct {
	Items []*products.Product `json:"items" swagger:"desc(The products derived from the batch),required"`
}

type RegisterBatchResponse struct {
	Message string              `json:"message" swagger:"desc(Result description),required"`
	TxHash  string              `json:"txHash,omitempty" swagger:"desc(The registration transaction, empty if the ledger is unavailable)"`
	Items   []*products.Product `json:"items" swagger:"desc(The registered products),required"`
}

type RegisterProductResponse struct {
	Message string            `json:"message" swagger:"desc(Result description),required"`
	TxHash  string            `json:"txHash,omitempty" swagger:"desc(The registration transaction, empty if the ledger is unavailable)"`
	Product *products.Product `json:"product" swagger:"desc(The registered product),required"`
}

type ShipBatchRequest struct {
	BatchID string `json:"batchId" swagger:"desc(The batch to ship),required"`
}

type ShipBatchResponse struct {
	Message string `json:"message" swagger:"desc(Result description),required"`
	BatchID string `json:"batchId" swagger:"desc(The shipped batch),required"`
	BoxID   string `json:"boxId" swagger:"desc(The box the batch travels in),required"`
	TxHash  string `json:"txHash,omitempty" swagger:"desc(The shipping transaction, empty if the ledger is unavailable)"`
}
