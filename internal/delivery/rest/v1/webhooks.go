package v1

import (
	"encoding/json"
	"gateway/internal/bitcart"
	"gateway/internal/domain"
	"gateway/internal/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// POST /webhooks/:processor
//
// The body is untrusted: only the invoice id is taken from it, the status is
// re-fetched from upstream. A webhook for an unknown invoice is acknowledged
// with 200 so the processor stops retrying.
func (h *Handler) processorWebhook(c *gin.Context) {
	var errid = logger.GenErrorId()

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	invoiceId := webhookInvoiceId(body)
	if invoiceId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgInvalidInvoiceId, "")
		return
	}

	invoice, err := h.services.Deposits.FindGlobal(h.db, invoiceId)
	if err != nil {
		h.log.TemplDepositErr("webhook for unknown invoice: "+err.Error(), errid, invoiceId, decimal.Zero, logger.NA, c.Request.RequestURI, logger.NA, c.ClientIP())
		c.AbortWithStatusJSON(http.StatusOK, responseWebhookAck{Ok: true})
		return
	}

	if invoice.Status.IsTerminal() {
		c.AbortWithStatusJSON(http.StatusOK, responseWebhookAck{Ok: true, Status: invoice.Status.ToString()})
		return
	}

	result, err := h.services.Reconciler.FetchInvoiceStatus(c.Request.Context(), invoiceId)
	if err != nil {
		h.log.TemplDepositErr("webhook reconcile error: "+err.Error(), errid, invoiceId, invoice.Amount, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		c.AbortWithStatusJSON(http.StatusOK, responseWebhookAck{Ok: true, Status: invoice.Status.ToString()})
		return
	}

	var dirty bool
	if invoice.Address == "" && result.Address != "" {
		invoice.Address = result.Address
		dirty = true
	}

	if invoice.Status.CanAdvanceTo(result.Status) {
		err := h.db.Transaction(func(tx *gorm.DB) error {
			return h.services.Poller.Advance(tx, invoice, result.Status)
		})
		if err != nil {
			h.log.TemplDepositErr("webhook advance error: "+err.Error(), errid, invoiceId, invoice.Amount, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
			responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
			return
		}
	} else if dirty {
		if err := h.services.Deposits.UpdateAndSave(h.db, invoice); err != nil {
			h.log.TemplDepositErr("webhook update invoice error: "+err.Error(), errid, invoiceId, invoice.Amount, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		}
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWebhookAck{Ok: true, Status: invoice.Status.ToString()})
}

// webhookInvoiceId digs the id out of the shapes processors send:
// {id}, {invoice_id} or {invoice: {id}}.
func webhookInvoiceId(body map[string]any) string {
	for _, key := range []string{"id", "invoice_id"} {
		switch v := body[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		case float64:
			b, _ := json.Marshal(v)
			return string(b)
		}
	}

	if nested, ok := body["invoice"].(map[string]any); ok {
		return bitcart.StrField(nested, "id")
	}

	return ""
}

func (h *Handler) initWebhookRoutes(g *gin.RouterGroup) {
	g.POST("/webhooks/:processor", h.processorWebhook)
}
