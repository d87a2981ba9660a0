package natsdomain

import (
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/shopspring/decimal"
)

// nats struct
type Ns struct {
	Nc *nats.Conn
	Js jetstream.JetStream
}

// MsgDepositConfirmed is published when an invoice reaches a terminal-success
// status. Downstream services (game balance, analytics) consume it.
type MsgDepositConfirmed struct {
	InvoiceID string          `json:"invoice_id"`
	Username  string          `json:"username"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Network   string          `json:"network"`
	Bonus     decimal.Decimal `json:"bonus"`
}
