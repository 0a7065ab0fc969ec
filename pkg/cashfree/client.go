// Package cashfree is a small client for the Cashfree Payment Gateway
// orders API.
package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Environment string

const (
	Sandbox    Environment = "SANDBOX"
	Production Environment = "PRODUCTION"

	DefaultAPIVersion = "2023-08-01"

	sandboxURL    = "https://sandbox.cashfree.com/pg"
	productionURL = "https://api.cashfree.com/pg"
)

var ErrNotConfigured = errors.New("cashfree: credentials not found")

// DetectEnvironment picks the sandbox when either credential is a test
// credential.
func DetectEnvironment(clientID, clientSecret string) Environment {
	if strings.HasPrefix(clientID, "TEST_") || strings.HasPrefix(clientSecret, "cfsk_test_") {
		return Sandbox
	}
	return Production
}

// CredentialMismatch reports a test id paired with a production secret or
// the other way round.
func CredentialMismatch(clientID, clientSecret string) bool {
	return strings.HasPrefix(clientID, "TEST_") != strings.HasPrefix(clientSecret, "cfsk_test_")
}

type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cashfree: %d %s: %s", e.Status, e.Code, e.Message)
}

type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type OrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

type OrderRequest struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     float64           `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails CustomerDetails   `json:"customer_details"`
	OrderMeta       OrderMeta         `json:"order_meta"`
	OrderNote       string            `json:"order_note,omitempty"`
	OrderTags       map[string]string `json:"order_tags,omitempty"`
}

type OrderResponse struct {
	CFOrderID        string  `json:"cf_order_id"`
	OrderID          string  `json:"order_id"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
	OrderStatus      string  `json:"order_status"`
	PaymentSessionID string  `json:"payment_session_id"`
}

type Client struct {
	clientID     string
	clientSecret string
	apiVersion   string
	env          Environment
	baseURL      string
	httpClient   *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithAPIVersion(v string) Option {
	return func(c *Client) {
		if v != "" {
			c.apiVersion = v
		}
	}
}

func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	env := DetectEnvironment(clientID, clientSecret)
	base := productionURL
	if env == Sandbox {
		base = sandboxURL
	}
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiVersion:   DefaultAPIVersion,
		env:          env,
		baseURL:      base,
		httpClient:   &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Environment() Environment { return c.env }

func (c *Client) Configured() bool {
	return c != nil && c.clientID != "" && c.clientSecret != ""
}

// CreateOrder registers an order and returns its payment session id.
func (c *Client) CreateOrder(ctx context.Context, order *OrderRequest) (*OrderResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("cashfree: encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)
	req.Header.Set("x-api-version", c.apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cashfree: create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		apiErr.Status = resp.StatusCode
		return nil, apiErr
	}

	var out OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("cashfree: decode order: %w", err)
	}
	return &out, nil
}
