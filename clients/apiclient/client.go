// Package apiclient is a small client for the TrustChain node REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/options"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

// APIError is returned for every response with a non 2xx status.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Message, e.Detail)
	}

	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string, opts ...options.Option[Client]) *Client {
	return options.Apply(&Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, opts)
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) options.Option[Client] {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(httpClient *http.Client) options.Option[Client] {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return ierrors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return ierrors.Wrapf(err, "%s %s failed", method, path)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return ierrors.Wrap(err, "failed to read response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		errorResponse := new(apierrors.ErrorResponse)
		if json.Unmarshal(data, errorResponse) == nil && errorResponse.Message != "" {
			apiErr.Message = errorResponse.Message
			apiErr.Detail = errorResponse.Error
		}

		return apiErr
	}

	if result == nil {
		return nil
	}

	return ierrors.Wrap(json.Unmarshal(data, result), "failed to decode response")
}

func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	res := new(models.HealthResponse)
	return res, c.do(ctx, http.MethodGet, "/health", nil, res)
}

// Login returns a token for the account. The client is not modified, use WithToken.
func (c *Client) Login(ctx context.Context, role, id, password string) (*models.LoginResponse, error) {
	res := new(models.LoginResponse)
	return res, c.do(ctx, http.MethodPost, "/api/auth/login", &models.LoginRequest{Role: role, ID: id, Password: password}, res)
}

func (c *Client) SignUp(ctx context.Context, id, email, password string) (*models.SignUpResponse, error) {
	res := new(models.SignUpResponse)
	return res, c.do(ctx, http.MethodPost, "/api/auth/signup", &models.SignUpRequest{ID: id, Email: email, Password: password}, res)
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*products.Product, error) {
	res := new(products.Product)
	return res, c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID), nil, res)
}

func (c *Client) GetBox(ctx context.Context, boxID string) (*models.BoxResponse, error) {
	res := new(models.BoxResponse)
	return res, c.do(ctx, http.MethodGet, "/api/retailer/boxes/"+url.PathEscape(boxID), nil, res)
}

func (c *Client) VerifySeal(ctx context.Context, productID, code string) (*models.SealVerifyResponse, error) {
	res := new(models.SealVerifyResponse)
	return res, c.do(ctx, http.MethodPost, "/api/retailer/seal/verify", &models.SealVerifyRequest{ProductID: productID, Code: code}, res)
}

func (c *Client) RequestChallenge(ctx context.Context, productID string) (*models.ChallengeResponse, error) {
	res := new(models.ChallengeResponse)
	return res, c.do(ctx, http.MethodGet, "/api/request-challenge/"+url.PathEscape(productID), nil, res)
}

func (c *Client) VerifyResponse(ctx context.Context, productID, response string) (*models.VerifyChipResponse, error) {
	res := new(models.VerifyChipResponse)
	return res, c.do(ctx, http.MethodPost, "/api/verify-response", &models.VerifyChipRequest{ProductID: productID, Response: response}, res)
}

func (c *Client) Stats(ctx context.Context) (*models.StatsResponse, error) {
	res := new(models.StatsResponse)
	return res, c.do(ctx, http.MethodGet, "/api/manufacturer/stats", nil, res)
}
