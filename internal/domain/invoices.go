package domain

import (
	"github.com/shopspring/decimal"
)

type Invoices struct {
	Model
	ID           uint            `gorm:"primaryKey"`
	InvoiceID    string          `gorm:"unique;not null"` // assigned by the upstream processor
	Username     string          `gorm:"size:64"`
	Status       Status          `gorm:"type:int8"`
	EndTimestamp int64           // unix invoice end timestamp
	Amount       decimal.Decimal `gorm:"type:numeric"`
	Currency     string          `gorm:"type:text"`
	Network      string          `gorm:"type:text"` // TRC20 / BEP20 / ERC20, informational
	Address      string          `gorm:"type:text"` // settlement address, may stay empty until upstream allocates one
	PayURL       string          `gorm:"type:text"`
	Webhook      string          `gorm:"type:text"` // merchant webhook url. used in webhook sender service
}

type Status uint8

const (
	STATUS_NEW Status = iota
	STATUS_PENDING
	STATUS_CONFIRMED
	STATUS_EXPIRED
	STATUS_CANCELLED
)

var Statuses = [...]string{"new", "pending", "confirmed", "expired", "cancelled"}

// methods

func StrToStatus(s string) Status {
	for i, statusName := range Statuses {
		if s == statusName {
			return Status(i)
		}
	}
	return STATUS_NEW
}

func (s Status) ToString() string {
	return Statuses[s]
}

func (s Status) IsPaid() bool {
	return s == STATUS_CONFIRMED
}

func (s Status) IsTerminal() bool {
	return s == STATUS_CONFIRMED || s == STATUS_EXPIRED || s == STATUS_CANCELLED
}

// statuses only move forward: new -> pending -> confirmed/expired/cancelled
func (s Status) CanAdvanceTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	return next > s
}

func (i *Invoices) IsPending() bool {
	return i.Status == STATUS_PENDING
}
