package repository

import (
	"gateway/internal/domain"
	"gateway/internal/infra/postgres"

	"gorm.io/gorm"
)

type AccountsRepo struct {
}

func InitAccountsRepo() *AccountsRepo {
	return &AccountsRepo{}
}

func (r *AccountsRepo) Find(tx *gorm.DB, username string) (*domain.Accounts, error) {
	var account domain.Accounts
	return &account, tx.Where(&domain.Accounts{Username: username}).First(&account).Error
}

func (r *AccountsRepo) FindOrCreate(tx *gorm.DB, username string) (*domain.Accounts, error) {
	account, err := r.Find(tx, username)
	if err != nil {
		if !postgres.IsNotFound(err) {
			return nil, err
		}

		account = &domain.Accounts{Username: username}
		if err := tx.Create(account).Error; err != nil {
			return nil, err
		}
	}
	return account, nil
}

func (r *AccountsRepo) Update(tx *gorm.DB, account *domain.Accounts) error {
	return tx.Save(account).Error
}

func (r *AccountsRepo) AppendEntry(tx *gorm.DB, entry *domain.LedgerEntries) error {
	return tx.Create(entry).Error
}

func (r *AccountsRepo) Entries(tx *gorm.DB, username string, limit int) ([]domain.LedgerEntries, error) {
	var entries []domain.LedgerEntries
	q := tx.Where(&domain.LedgerEntries{Username: username}).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return entries, q.Find(&entries).Error
}
