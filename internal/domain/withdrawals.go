package domain

import "github.com/shopspring/decimal"

type WithdrawalStatus uint8

const (
	WITHDRAWAL_NONE WithdrawalStatus = iota // only for init
	WITHDRAWAL_SENT
	WITHDRAWAL_MANUAL_REVIEW
)

var WithdrawalStatuses = [...]string{"none", "sent", "manual_review"}

func (ws WithdrawalStatus) ToString() string {
	return WithdrawalStatuses[ws]
}

type Withdrawals struct {
	Model
	ID uint `gorm:"primaryKey"`

	WithdrawalID string           `gorm:"unique;not null"`
	Username     string           `gorm:"size:64;not null"`
	Amount       decimal.Decimal  `gorm:"type:numeric"`
	To           string           `gorm:"not null"`
	Network      string           `gorm:"not null"`
	Status       WithdrawalStatus `gorm:"not null"`
}
