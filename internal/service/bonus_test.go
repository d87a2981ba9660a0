package service

import (
	"gateway/internal/domain"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeAccountsRepo struct {
	account *domain.Accounts
	entries []domain.LedgerEntries
}

func (f *fakeAccountsRepo) Find(tx *gorm.DB, username string) (*domain.Accounts, error) {
	if f.account == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.account, nil
}

func (f *fakeAccountsRepo) FindOrCreate(tx *gorm.DB, username string) (*domain.Accounts, error) {
	if f.account == nil {
		f.account = &domain.Accounts{Username: username}
	}
	return f.account, nil
}

func (f *fakeAccountsRepo) Update(tx *gorm.DB, account *domain.Accounts) error {
	f.account = account
	return nil
}

func (f *fakeAccountsRepo) AppendEntry(tx *gorm.DB, entry *domain.LedgerEntries) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAccountsRepo) Entries(tx *gorm.DB, username string, limit int) ([]domain.LedgerEntries, error) {
	return f.entries, nil
}

func TestTier(t *testing.T) {
	s := NewBonusService(nil)

	cases := []struct {
		amount         string
		alreadyApplied bool
		want           int
	}{
		{"50", false, 0},
		{"99.99", false, 0},
		{"100", false, 100},
		{"499.99", false, 100},
		{"500", false, 200},
		{"10000", false, 200},
		{"500", true, 0},
		{"100", true, 0},
	}

	for _, c := range cases {
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			t.Fatal(err)
		}

		got := s.Tier(amount, c.alreadyApplied)
		if got != c.want {
			t.Fatalf("Tier(%s, %v) = %d, want %d", c.amount, c.alreadyApplied, got, c.want)
		}
	}
}

func TestBonusAmount(t *testing.T) {
	s := NewBonusService(nil)

	cases := []struct {
		amount string
		tier   int
		want   string
	}{
		{"100", 100, "100"},
		{"499.99", 100, "499.99"},
		{"500", 200, "1000"},
		{"123.456", 100, "123.46"},
		{"50", 0, "0"},
	}

	for _, c := range cases {
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			t.Fatal(err)
		}

		got := s.BonusAmount(amount, c.tier)
		if got.String() != c.want {
			t.Fatalf("BonusAmount(%s, %d) = %s, want %s", c.amount, c.tier, got.String(), c.want)
		}
	}
}

func TestApplyDepositFirstBonus(t *testing.T) {
	repo := &fakeAccountsRepo{}
	s := NewBonusService(repo)

	result, err := s.ApplyDeposit(nil, "alice", "inv-1", decimal.NewFromInt(100))
	if err != nil {
		t.Fatal(err)
	}

	if result.Tier != 100 || result.Bonus.String() != "100" {
		t.Fatalf("tier=%d bonus=%s, want 100/100", result.Tier, result.Bonus.String())
	}
	if result.Balance.String() != "200" {
		t.Fatalf("balance = %s, want 200", result.Balance.String())
	}
	if !repo.account.FirstBonusApplied || repo.account.BonusTier != 100 {
		t.Fatalf("account = %+v, want bonus consumed at tier 100", repo.account)
	}
	if len(repo.entries) != 2 || repo.entries[0].Kind != domain.ENTRY_TOPUP || repo.entries[1].Kind != domain.ENTRY_BONUS {
		t.Fatalf("entries = %+v, want topup + bonus", repo.entries)
	}

	// the next deposit gets no bonus no matter the size
	result, err = s.ApplyDeposit(nil, "alice", "inv-2", decimal.NewFromInt(500))
	if err != nil {
		t.Fatal(err)
	}

	if result.Tier != 0 || !result.Bonus.IsZero() {
		t.Fatalf("tier=%d bonus=%s, want no bonus", result.Tier, result.Bonus.String())
	}
	if result.Balance.String() != "700" {
		t.Fatalf("balance = %s, want 700", result.Balance.String())
	}
	if len(repo.entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(repo.entries))
	}
}

func TestApplyDepositBelowThresholdKeepsBonus(t *testing.T) {
	repo := &fakeAccountsRepo{}
	s := NewBonusService(repo)

	result, err := s.ApplyDeposit(nil, "bob", "inv-1", decimal.NewFromInt(50))
	if err != nil {
		t.Fatal(err)
	}

	if result.Tier != 0 || result.Balance.String() != "50" {
		t.Fatalf("tier=%d balance=%s, want 0/50", result.Tier, result.Balance.String())
	}
	if repo.account.FirstBonusApplied {
		t.Fatal("small deposit must not consume the first-deposit bonus")
	}
	if len(repo.entries) != 1 || repo.entries[0].Kind != domain.ENTRY_TOPUP {
		t.Fatalf("entries = %+v, want a single topup", repo.entries)
	}

	// a later qualifying deposit still gets it
	result, err = s.ApplyDeposit(nil, "bob", "inv-2", decimal.NewFromInt(100))
	if err != nil {
		t.Fatal(err)
	}

	if result.Tier != 100 || result.Balance.String() != "250" {
		t.Fatalf("tier=%d balance=%s, want 100/250", result.Tier, result.Balance.String())
	}
	if !repo.account.FirstBonusApplied {
		t.Fatal("qualifying deposit must consume the bonus")
	}
}
