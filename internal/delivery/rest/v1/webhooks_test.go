package v1

import (
	"context"
	"encoding/json"
	"gateway/internal/config"
	"gateway/internal/domain"
	"gateway/internal/logger"
	"gateway/internal/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestWebhookInvoiceId(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"id": "abc"}`, "abc"},
		{`{"invoice_id": "def"}`, "def"},
		{`{"invoice": {"id": "ghi"}}`, "ghi"},
		{`{"id": "abc", "invoice_id": "def"}`, "abc"},
		{`{"invoice": {}}`, ""},
		{`{"status": "paid"}`, ""},
		{`{}`, ""},
	}

	for _, c := range cases {
		var body map[string]any
		if err := json.Unmarshal([]byte(c.body), &body); err != nil {
			t.Fatal(err)
		}

		if got := webhookInvoiceId(body); got != c.want {
			t.Fatalf("webhookInvoiceId(%s) = %q, want %q", c.body, got, c.want)
		}
	}
}

type fakeDeposits struct {
	invoice *domain.Invoices
	saved   *domain.Invoices
}

func (f *fakeDeposits) Create(ctx context.Context, params service.CreateDepositParams) (*domain.ResponseDepositInfo, *domain.Invoices, error) {
	return nil, nil, nil
}

func (f *fakeDeposits) FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error) {
	return f.invoice, nil
}

func (f *fakeDeposits) UpdateAndSave(tx *gorm.DB, invoice *domain.Invoices) error {
	f.saved = invoice
	return nil
}

func (f *fakeDeposits) FindGlobal(tx *gorm.DB, invoiceId string) (*domain.Invoices, error) {
	return f.invoice, nil
}

func (f *fakeDeposits) FindAndSaveToCache(invoiceId string) (*domain.Invoices, error) {
	return f.invoice, nil
}

func (f *fakeDeposits) ToResponse(invoice *domain.Invoices, raw map[string]any) *domain.ResponseDepositInfo {
	return &domain.ResponseDepositInfo{Id: invoice.InvoiceID, Status: invoice.Status.ToString(), Raw: raw}
}

type fakeReconciler struct {
	result *service.ReconcileResult
}

func (f *fakeReconciler) FetchInvoiceStatus(ctx context.Context, invoiceId string) (*service.ReconcileResult, error) {
	return f.result, nil
}

// a late-assigned address must hit the database even when the status stays put
func TestProcessorWebhookPersistsLateAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	invoice := &domain.Invoices{
		InvoiceID:    "inv-late-addr",
		Username:     "alice",
		Status:       domain.STATUS_PENDING,
		EndTimestamp: time.Now().Add(time.Hour).Unix(),
	}

	deposits := &fakeDeposits{invoice: invoice}
	rec := &fakeReconciler{result: &service.ReconcileResult{Status: domain.STATUS_PENDING, Address: "TLateAddr123"}}

	h := NewHandler(&service.Services{Deposits: deposits, Reconciler: rec}, nil, &config.Config{}, nil, logger.Init(false))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/webhooks/bitcart", strings.NewReader(`{"id":"inv-late-addr"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.processorWebhook(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if deposits.saved == nil || deposits.saved.Address != "TLateAddr123" {
		t.Fatalf("late address not persisted, saved = %+v", deposits.saved)
	}
}
