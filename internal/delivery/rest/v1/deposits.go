package v1

import (
	"context"
	"gateway/internal/domain"
	"gateway/internal/logger"
	"gateway/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// POST /deposits
func (h *Handler) depositCreate(c *gin.Context) {
	var errid = logger.GenErrorId()

	depositData, ok := filterQuery(c)
	if !ok || depositData == nil {
		return
	}

	info, invoice, err := h.services.Deposits.Create(c.Request.Context(), service.CreateDepositParams{
		Username: depositData.Username,
		Price:    depositData.Price,
		Currency: depositData.Currency,
		Network:  depositData.Network,
		Webhook:  depositData.Webhook,
		Origin:   requestOrigin(c),
	})
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	if invoice.Address != "" {
		// pre-render so GET .../qr-code is a cache hit
		if _, err := h.services.QrCodes.New(invoice.Address); err != nil {
			h.log.TemplDepositErr("qr code new error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, c.Request.RequestURI, invoice.Username, c.ClientIP())
		}
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Unix(invoice.EndTimestamp, 0))
	go h.services.Poller.RunCheck(ctx, cancel, invoice)

	c.AbortWithStatusJSON(http.StatusOK, info)
}

// requestOrigin rebuilds the scheme://host the client hit, used as callback
// base when app_base_url is not configured.
func requestOrigin(c *gin.Context) string {
	if origin := c.Request.Header.Get("Origin"); origin != "" {
		return origin
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if c.Request.Host == "" {
		return ""
	}
	return scheme + "://" + c.Request.Host
}

func (h *Handler) initDepositRoutes(g *gin.RouterGroup) {
	g.POST("/deposits", h.rateLimitMiddleware(DEFAULT_LIMIT), h.depositCreate)
}
