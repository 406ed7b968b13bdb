package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

func TestLoginAndAuthorizedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			req := new(models.LoginRequest)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(req))
			assert.Equal(t, "retailer", req.Role)
			_ = json.NewEncoder(w).Encode(&models.LoginResponse{Token: "tok", Role: req.Role})
		case "/api/retailer/boxes/BOX 1":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(&models.BoxResponse{BoxID: "BOX 1", Count: 0, Products: []*models.BoxProductSummary{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	login, err := New(server.URL).Login(ctx, "retailer", "ret", "123")
	require.NoError(t, err)
	require.Equal(t, "tok", login.Token)

	box, err := New(server.URL+"/", WithToken(login.Token)).GetBox(ctx, "BOX 1")
	require.NoError(t, err)
	require.Equal(t, "BOX 1", box.BoxID)
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(&apierrors.ErrorResponse{Message: "product not found", Error: "Not Found"})
	}))
	defer server.Close()

	_, err := New(server.URL).GetProduct(context.Background(), "B1-1")

	var apiErr *APIError
	require.True(t, ierrors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "product not found", apiErr.Message)
	require.Equal(t, "404 product not found: Not Found", apiErr.Error())
}

func TestAPIErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := New(server.URL).RequestChallenge(context.Background(), "B1-1")

	var apiErr *APIError
	require.True(t, ierrors.As(err, &apiErr))
	require.Equal(t, http.StatusText(http.StatusTooManyRequests), apiErr.Message)
}

func TestDecodeProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/B1-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"productId":"B1-1","name":"Watch","price":"1000000000000000000000","sold":true}`))
	}))
	defer server.Close()

	p, err := New(server.URL).GetProduct(context.Background(), "B1-1")
	require.NoError(t, err)
	require.Equal(t, "B1-1", p.ProductID)
	require.Equal(t, "Watch", p.Name)
	require.Equal(t, "1000000000000000000000", p.Price.String())
	require.True(t, p.Sold)
}
