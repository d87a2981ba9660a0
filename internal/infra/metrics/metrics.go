package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DepositsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_deposits_created_total",
		Help: "Invoices created against the upstream processor.",
	})

	DepositsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_deposits_confirmed_total",
		Help: "Invoices that reached a terminal-success status.",
	})

	PollTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_poll_ticks_total",
		Help: "Upstream status poll attempts.",
	})

	WebhooksSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_webhooks_sent_total",
		Help: "Merchant webhook deliveries by result.",
	}, []string{"result"})

	UpstreamErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_upstream_errors_total",
		Help: "Non-2xx answers from the upstream processor.",
	})
)
