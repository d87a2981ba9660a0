package v1

import (
	"encoding/base64"
	"gateway/internal/domain"
	"gateway/internal/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /invoices/:id
//
// The storefront polls this until the status is terminal. The upstream
// processor stays the source of truth: a non-terminal local invoice is
// reconciled on every hit, a terminal one is served from the local row.
func (h *Handler) invoiceInfo(c *gin.Context) {
	var errid = logger.GenErrorId()

	invoiceId := c.Param("id")

	invoice, err := h.services.Deposits.FindGlobal(h.db, invoiceId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	if !invoice.Status.IsTerminal() {
		invoice = h.reconcile(c, invoice, errid)
	}

	c.AbortWithStatusJSON(http.StatusOK, h.services.Deposits.ToResponse(invoice, nil))
}

// reconcile refreshes one invoice from upstream. Best effort, upstream
// failures leave the local row as is.
func (h *Handler) reconcile(c *gin.Context, invoice *domain.Invoices, errid string) *domain.Invoices {
	result, err := h.services.Reconciler.FetchInvoiceStatus(c.Request.Context(), invoice.InvoiceID)
	if err != nil {
		h.log.TemplDepositErr("reconcile error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		return invoice
	}

	var dirty bool
	if invoice.Address == "" && result.Address != "" {
		invoice.Address = result.Address
		dirty = true
	}
	if invoice.PayURL == "" && result.PayUrl != "" {
		invoice.PayURL = result.PayUrl
		dirty = true
	}

	if invoice.Status.CanAdvanceTo(result.Status) {
		err := h.db.Transaction(func(tx *gorm.DB) error {
			return h.services.Poller.Advance(tx, invoice, result.Status)
		})
		if err != nil {
			h.log.TemplDepositErr("advance invoice error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		}
		return invoice
	}

	if dirty {
		if err := h.services.Deposits.UpdateAndSave(h.db, invoice); err != nil {
			h.log.TemplDepositErr("update invoice error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		}
	}

	return invoice
}

// GET /invoices/:id/qr-code
func (h *Handler) qrCode(c *gin.Context) {
	var errid = logger.GenErrorId()

	invoiceId := c.Param("id")

	invoice, err := h.services.Deposits.FindGlobal(h.db, invoiceId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	if invoice.Address == "" {
		responseErr(c, http.StatusBadRequest, "invoice has no settlement address yet", "")
		return
	}

	qrCode, err := h.services.QrCodes.FindOrNew(invoice.Address)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplDepositErr("qr code find or new error: "+err.Error(), errid, invoiceId, decimal.Zero, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		return
	}

	imageData, err := base64.RawStdEncoding.DecodeString(qrCode)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplDepositErr("qr code decode error: "+err.Error(), errid, invoiceId, decimal.Zero, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		return
	}

	c.Data(http.StatusOK, "image/png", imageData)
}

func (h *Handler) initInvoiceRoutes(g *gin.RouterGroup) {
	g.GET("/invoices/:id", h.invoiceInfo)
	g.GET("/invoices/:id/qr-code", h.qrCode)
}
