package domain

import "github.com/shopspring/decimal"

// Accounts is the per-username bonus ledger head: balance and the
// one-shot first-deposit bonus flag.
type Accounts struct {
	Model
	ID                uint            `gorm:"primaryKey"`
	Username          string          `gorm:"unique;size:64;not null"`
	Balance           decimal.Decimal `gorm:"type:numeric;default:0"`
	FirstBonusApplied bool            `gorm:"not null;default:false"`
	BonusTier         int             // fixed by the first qualifying deposit, never recomputed
}

const (
	ENTRY_TOPUP = "topup"
	ENTRY_BONUS = "bonus"
)

type LedgerEntries struct {
	Model
	ID        uint            `gorm:"primaryKey"`
	Username  string          `gorm:"size:64;not null;index"`
	InvoiceID string          `gorm:"size:64;index"`
	Kind      string          `gorm:"type:varchar(16);not null"` // ENTRY_*
	Amount    decimal.Decimal `gorm:"type:numeric"`
}
