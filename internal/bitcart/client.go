package bitcart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"gateway/internal/domain"
	"gateway/internal/infra/metrics"
	"gateway/internal/logger"
	"gateway/pkg/rr"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Client talks to a Bitcart-compatible processor. Several mirrors can be
// configured; requests rotate over them round-robin.
type Client struct {
	bases   rr.RoundRobin
	primary string // first configured mirror, used for fallback links
	token   string
	storeID string

	http *http.Client
	l    logger.Logger
}

func NewClient(apiUrls []string, token, storeID string, l logger.Logger) *Client {
	normalized := make([]string, 0, len(apiUrls))
	for _, u := range apiUrls {
		if n := NormalizeApiBase(u); n != "" {
			normalized = append(normalized, n)
		}
	}

	var list atomic.Pointer[[]string]
	list.Store(&normalized)

	var primary string
	if len(normalized) > 0 {
		primary = normalized[0]
	}

	return &Client{
		bases:   rr.New(&list),
		primary: primary,
		token:   AuthHeader(token),
		storeID: storeID,
		http:    &http.Client{Timeout: 30 * time.Second},
		l:       l,
	}
}

// checkConfigured fails fast before any network call.
func (c *Client) checkConfigured() error {
	if c.bases.Count() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotConfigured, domain.ErrMsgApiUrlNotConfigured)
	}
	if c.token == "" {
		return fmt.Errorf("%w: %s", domain.ErrNotConfigured, domain.ErrMsgTokenNotConfigured)
	}
	if c.storeID == "" {
		return fmt.Errorf("%w: %s", domain.ErrNotConfigured, domain.ErrMsgStoreIdNotConfigured)
	}
	return nil
}

func (c *Client) PrimaryBase() string {
	return c.primary
}

type CreateInvoiceParams struct {
	Price           decimal.Decimal
	Currency        string
	Metadata        map[string]any
	NotificationURL string
	RedirectURL     string
}

type createInvoicePayload struct {
	StoreID         string         `json:"store_id"`
	Price           json.Number    `json:"price"`
	Currency        string         `json:"currency"`
	Metadata        map[string]any `json:"metadata"`
	NotificationURL string         `json:"notification_url,omitempty"`
	RedirectURL     string         `json:"redirect_url,omitempty"`
}

// CreateInvoice issues one POST to the invoice-creation endpoint.
// The price is forwarded exactly as given, no rounding.
func (c *Client) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (map[string]any, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	base, _ := c.bases.Next()

	payload := createInvoicePayload{
		StoreID:         c.storeID,
		Price:           json.Number(params.Price.String()),
		Currency:        params.Currency,
		Metadata:        params.Metadata,
		NotificationURL: params.NotificationURL,
		RedirectURL:     params.RedirectURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// GetInvoice fetches a single invoice.
func (c *Client) GetInvoice(ctx context.Context, id string) (map[string]any, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	base, _ := c.bases.Next()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/invoices/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.token)

	return c.do(req)
}

// GetPayments / GetPaymentMethods are auxiliary lookups used to widen the
// address search. Callers swallow their errors.
func (c *Client) GetPayments(ctx context.Context, id string) ([]any, error) {
	return c.getList(ctx, id, "payments")
}

func (c *Client) GetPaymentMethods(ctx context.Context, id string) ([]any, error) {
	return c.getList(ctx, id, "payment-methods")
}

func (c *Client) getList(ctx context.Context, id string, sub string) ([]any, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	base, _ := c.bases.Next()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/invoices/"+url.PathEscape(id)+"/"+sub, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrors.Inc()
		return nil, newUpstreamError(resp.StatusCode, raw)
	}

	var list []any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// WaitForAddress polls the single-invoice endpoint until an address shows up
// or the policy is exhausted. Not finding one is not an error.
func (c *Client) WaitForAddress(ctx context.Context, id string, policy RetryPolicy) string {
	for i := 0; i < policy.MaxAttempts; i++ {
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(policy.Delay):
		}

		fresh, err := c.GetInvoice(ctx, id)
		if err != nil {
			continue
		}

		if address := ExtractAddress(fresh); address != "" {
			return address
		}
	}

	return ""
}

func (c *Client) do(req *http.Request) (map[string]any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrors.Inc()
		c.l.TemplUpstreamErr("upstream non-2xx", req.URL.String(), resp.StatusCode, nil)
		return nil, newUpstreamError(resp.StatusCode, raw)
	}

	// UseNumber keeps prices exact
	var obj map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// newUpstreamError keeps the upstream status and pulls a human message out of
// the usual {"detail": "..."} error shape, falling back to the raw body.
func newUpstreamError(status int, body []byte) *domain.UpstreamError {
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &domain.UpstreamError{StatusCode: status, Body: detail.Detail}
	}

	return &domain.UpstreamError{StatusCode: status, Body: string(body)}
}
