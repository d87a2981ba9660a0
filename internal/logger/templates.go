package logger

import (
	"github.com/shopspring/decimal"
)

func (l Logger) TemplDepositErr(message string, errorId string, invoiceId string, amount decimal.Decimal, currency string, uri string, username string, ip string) string {
	l.Error(message, LS_DEPOSITS, true, "invoice_id", invoiceId, "amount", amount.String(), "currency", currency, "uri", uri, "error_id", errorId, "ip", ip, "username", username)
	return errorId
}

func (l Logger) TemplDepositInfo(message string, errorId string, invoiceId string, amount decimal.Decimal, currency string, uri string, username string, ip string) string {
	l.Info(message, LS_DEPOSITS, true, "invoice_id", invoiceId, "amount", amount.String(), "currency", currency, "uri", uri, "error_id", errorId, "ip", ip, "username", username)
	return errorId
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, LS_FATAL, true, "error", err.Error(), "ipv4", ipv4)
}

func (l Logger) TemplUpstreamErr(message string, url string, status int, err error) {
	var errmsg = NA
	if err != nil {
		errmsg = err.Error()
	}
	l.Error(message, LS_UPSTREAM, true, "url", url, "status", status, "error", errmsg)
}

func (l Logger) TemplNatsError(message, natsUrl string, err error) {
	l.Error(message, LS_UPSTREAM, true, "nats_url", natsUrl, "error", err.Error())
}

func (l Logger) TemplNatsInfo(message, natsUrl string) {
	l.Info(message, LS_UPSTREAM, true, "nats_url", natsUrl, "error", NA)
}

func (l Logger) TemplWebhookErr(message, url string, attempts int, proxy string, payload []byte) {
	l.Error(message, LS_WEBHOOKS, true, "url", url, "attempts", attempts, "proxy", proxy, "payload", string(payload))
}
