package service

import (
	"gateway/internal/domain"
	"gateway/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	tierHigh = decimal.NewFromInt(500) // -> 200%
	tierLow  = decimal.NewFromInt(100) // -> 100%
)

type BonusService struct {
	repo repository.Accounts
}

func NewBonusService(repo repository.Accounts) *BonusService {
	return &BonusService{repo: repo}
}

// Tier picks the first-deposit bonus tier in percent. A deposit below the
// low threshold does not consume the bonus, the next qualifying one still gets it.
func (s *BonusService) Tier(amount decimal.Decimal, alreadyApplied bool) int {
	if alreadyApplied {
		return 0
	}

	switch {
	case amount.GreaterThanOrEqual(tierHigh):
		return 200
	case amount.GreaterThanOrEqual(tierLow):
		return 100
	default:
		return 0
	}
}

func (s *BonusService) BonusAmount(amount decimal.Decimal, tier int) decimal.Decimal {
	if tier <= 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(int64(tier))).Div(decimal.NewFromInt(100)).Round(2)
}

type ApplyResult struct {
	Tier    int
	Bonus   decimal.Decimal
	Balance decimal.Decimal
}

// ApplyDeposit credits amount + bonus and appends ledger entries. Runs inside
// the caller's transaction; the outbox event guarantees at-most-once per invoice.
func (s *BonusService) ApplyDeposit(tx *gorm.DB, username string, invoiceId string, amount decimal.Decimal) (*ApplyResult, error) {
	account, err := s.repo.FindOrCreate(tx, username)
	if err != nil {
		return nil, err
	}

	tier := s.Tier(amount, account.FirstBonusApplied)
	bonus := s.BonusAmount(amount, tier)

	account.Balance = account.Balance.Add(amount).Add(bonus)

	if tier > 0 {
		// fixed by the first qualifying deposit, never recomputed
		account.FirstBonusApplied = true
		account.BonusTier = tier
	}

	if err := s.repo.Update(tx, account); err != nil {
		return nil, err
	}

	if err := s.repo.AppendEntry(tx, &domain.LedgerEntries{
		Username:  username,
		InvoiceID: invoiceId,
		Kind:      domain.ENTRY_TOPUP,
		Amount:    amount,
	}); err != nil {
		return nil, err
	}

	if bonus.GreaterThan(decimal.Zero) {
		if err := s.repo.AppendEntry(tx, &domain.LedgerEntries{
			Username:  username,
			InvoiceID: invoiceId,
			Kind:      domain.ENTRY_BONUS,
			Amount:    bonus,
		}); err != nil {
			return nil, err
		}
	}

	return &ApplyResult{Tier: tier, Bonus: bonus, Balance: account.Balance}, nil
}
