package service

import (
	"gateway/internal/domain"
	"gateway/internal/infra/postgres"
	"gateway/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const accountEntriesLimit = 50

type AccountsService struct {
	repo repository.Accounts
}

func NewAccountsService(repo repository.Accounts) *AccountsService {
	return &AccountsService{repo: repo}
}

type AccountView struct {
	Username          string                 `json:"username"`
	Balance           decimal.Decimal        `json:"balance"`
	FirstBonusApplied bool                   `json:"firstBonusApplied"`
	BonusTier         int                    `json:"bonusTier"`
	Entries           []domain.LedgerEntries `json:"entries"` // most-recent-first
}

func (s *AccountsService) Get(tx *gorm.DB, username string) (*AccountView, error) {
	account, err := s.repo.Find(tx, username)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	entries, err := s.repo.Entries(tx, username, accountEntriesLimit)
	if err != nil {
		return nil, err
	}

	return &AccountView{
		Username:          account.Username,
		Balance:           account.Balance,
		FirstBonusApplied: account.FirstBonusApplied,
		BonusTier:         account.BonusTier,
		Entries:           entries,
	}, nil
}
