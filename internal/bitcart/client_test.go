package bitcart

import (
	"context"
	"encoding/json"
	"gateway/internal/domain"
	"gateway/internal/logger"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient([]string{srv.URL}, "test-token", "store-1", logger.Logger{})
}

func TestCreateInvoicePayload(t *testing.T) {
	var got map[string]any

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/invoices" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Token test-token" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}

		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Error(err)
		}
		// the price must arrive exactly as sent
		if !strings.Contains(string(body), `"price":499.99`) {
			t.Errorf("price not forwarded verbatim: %s", body)
		}

		w.Write([]byte(`{"id":"inv-1","price":499.99,"currency":"USDT"}`))
	})

	price, _ := decimal.NewFromString("499.99")
	inv, err := c.CreateInvoice(context.Background(), CreateInvoiceParams{
		Price:    price,
		Currency: "USDT",
		Metadata: map[string]any{"username": "alice", "network": "TRC20"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if inv["id"] != "inv-1" {
		t.Fatal(inv)
	}
	if got["store_id"] != "store-1" {
		t.Fatal("store_id missing from payload")
	}
}

func TestCreateInvoiceUpstreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(422)
		w.Write([]byte(`{"detail":"bad store"}`))
	})

	_, err := c.CreateInvoice(context.Background(), CreateInvoiceParams{Price: decimal.NewFromInt(100), Currency: "USDT"})
	if err == nil {
		t.Fatal("want error")
	}

	if domain.GetStatusByErr(err) != 422 {
		t.Fatalf("want status 422, got %d", domain.GetStatusByErr(err))
	}
	if err.Error() != "bad store" {
		t.Fatalf("want detail message, got %q", err.Error())
	}
}

func TestNotConfigured(t *testing.T) {
	c := NewClient(nil, "", "", logger.Logger{})

	_, err := c.CreateInvoice(context.Background(), CreateInvoiceParams{Price: decimal.NewFromInt(1)})
	if err == nil {
		t.Fatal("want configuration error before any network call")
	}
	if domain.GetStatusByErr(err) != 500 {
		t.Fatal("configuration errors surface as 500")
	}
}

func TestWaitForAddress(t *testing.T) {
	var calls int
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.Write([]byte(`{"id":"inv-1"}`))
			return
		}
		w.Write([]byte(`{"id":"inv-1","payments":[{"address":"addr-late"}]}`))
	})

	addr := c.WaitForAddress(context.Background(), "inv-1", RetryPolicy{MaxAttempts: 5, Delay: 0})
	if addr != "addr-late" {
		t.Fatalf("got %q", addr)
	}
	if calls != 3 {
		t.Fatalf("want 3 calls, got %d", calls)
	}
}

func TestWaitForAddressExhausted(t *testing.T) {
	var calls int
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"id":"inv-1"}`))
	})

	// no address is not an error
	addr := c.WaitForAddress(context.Background(), "inv-1", RetryPolicy{MaxAttempts: 2, Delay: 0})
	if addr != "" {
		t.Fatal(addr)
	}
	if calls != 2 {
		t.Fatalf("want 2 calls, got %d", calls)
	}
}
