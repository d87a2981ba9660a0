package domain

import "time"

const (
	EVENT_DEPOSIT_CREDIT = "deposit_credit" // credit balance + first-deposit bonus
	EVENT_WEBHOOK        = "webhook"
)

type Events struct {
	ID         uint   `gorm:"primaryKey"`
	RelationID uint   `gorm:"not null;uniqueIndex:idx_events_rel_type"`
	Type       string `gorm:"type:varchar(255);uniqueIndex:idx_events_rel_type"` //const type EVENT_*
	Payload    string
	Status     string // new/done
	CreatedAt  time.Time
}

// event payloads
type PayloadDepositCredit struct {
	InvoiceID string `json:"invoice_id"`
	Username  string `json:"username"`
	Amount    string `json:"amount"`
}

type WebhookPayload struct {
	InvoiceID string              `json:"invoice_id"`
	Url       string              `json:"url"`
	Info      ResponseDepositInfo `json:"info"`
}
