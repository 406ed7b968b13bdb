package models

import (
	"github.com/trustchain/trustchain/packages/products"
)

// NameUnavailable is shown for box entries whose product could not be fetched.
const NameUnavailable = "(error fetching name)"

type BoxProductSummary struct {
	ProductID string `json:"productId" swagger:"desc(The product ID),required"`
	Name      string `json:"name" swagger:"desc(The product name),required"`
}

type BoxResponse struct {
	BoxID    string               `json:"boxId" swagger:"desc(The box ID),required"`
	Count    int                  `json:"count" swagger:"desc(Number of products in the box),required"`
	Products []*BoxProductSummary `json:"products" swagger:"desc(The products in the box),required"`
}

type BoxDetailsResponse struct {
	BoxID    string              `json:"boxId" swagger:"desc(The box ID),required"`
	Shipped  bool                `json:"shipped" swagger:"desc(Whether the box was shipped),required"`
	Count    int                 `json:"count" swagger:"desc(Number of products in the box),required"`
	Products []*products.Product `json:"products" swagger:"desc(The products in the box that could be fetched),required"`
	Missing  []string            `json:"missing,omitempty" swagger:"desc(Products of the box that could not be fetched)"`
}

type ProductTxResult struct {
	ProductID string `json:"productId" swagger:"desc(The product ID),required"`
	TxHash    string `json:"txHash,omitempty" swagger:"desc(The transaction hash on success)"`
	Error     string `json:"error,omitempty" swagger:"desc(The error on failure)"`
}

type VerifyBoxResponse struct {
	BoxID    string             `json:"boxId" swagger:"desc(The box ID),required"`
	Verified int                `json:"verified" swagger:"desc(Number of products verified),required"`
	Results  []*ProductTxResult `json:"results" swagger:"desc(Per product results),required"`
}

type SealVerifyRequest struct {
	ProductID string `json:"productId" swagger:"desc(The product ID),required"`
	Code      string `json:"code" swagger:"desc(The scanned seal code),required"`
}

type SealVerifyResponse struct {
	Valid         bool              `json:"valid" swagger:"desc(Whether the seal is valid),required"`
	MatchedWindow *int64            `json:"matchedWindow,omitempty" swagger:"desc(The time window the code matched)"`
	Offset        *int              `json:"offset,omitempty" swagger:"desc(Offset of the matched window from the current one)"`
	Message       string            `json:"message" swagger:"desc(Human readable result),required"`
	Product       *products.Product `json:"product" swagger:"desc(The product),required"`
}

type TxResponse struct {
	Message string `json:"message" swagger:"desc(Result description),required"`
	TxHash  string `json:"txHash" swagger:"desc(The transaction hash),required"`
}
