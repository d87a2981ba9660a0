package repository

import (
	"gateway/internal/domain"

	"gorm.io/gorm"
)

type Invoices interface {
	Create(tx *gorm.DB, invoice *domain.Invoices) error
	Update(tx *gorm.DB, invoice *domain.Invoices) error
	FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error)
	FindByStatus(tx *gorm.DB, status domain.Status) ([]*domain.Invoices, error)
}

type Accounts interface {
	Find(tx *gorm.DB, username string) (*domain.Accounts, error)
	FindOrCreate(tx *gorm.DB, username string) (*domain.Accounts, error)
	Update(tx *gorm.DB, account *domain.Accounts) error
	AppendEntry(tx *gorm.DB, entry *domain.LedgerEntries) error
	// most-recent-first
	Entries(tx *gorm.DB, username string, limit int) ([]domain.LedgerEntries, error)
}

type Events interface {
	Create(tx *gorm.DB, eventType string, eventRelationID uint, payload string) error
	// flips a "new" event to "done", reports how many rows were claimed
	Done(tx *gorm.DB, eventRelationID uint, eventType string) (int64, error)
	Find(tx *gorm.DB, eventRelationID uint, eventType string) (*domain.Events, error)
}

type Withdrawals interface {
	Create(tx *gorm.DB, withdrawal *domain.Withdrawals) error
	Find(tx *gorm.DB, withdrawalId string) (*domain.Withdrawals, error)
}

type Repositories struct {
	Invoices    Invoices
	Accounts    Accounts
	Events      Events
	Withdrawals Withdrawals
}

func New() *Repositories {
	return &Repositories{
		Invoices:    InitInvoicesRepo(),
		Accounts:    InitAccountsRepo(),
		Events:      InitEventsRepo(),
		Withdrawals: InitWithdrawalsRepo(),
	}
}
