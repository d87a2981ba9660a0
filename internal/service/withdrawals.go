package service

import (
	"gateway/internal/domain"
	"gateway/internal/repository"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// withdrawals above this go to manual review instead of being auto-sent
var autoSendLimit = decimal.NewFromInt(100)

type WithdrawalsService struct {
	repo repository.Withdrawals
	db   *gorm.DB
}

func NewWithdrawalsService(db *gorm.DB, repo repository.Withdrawals) *WithdrawalsService {
	return &WithdrawalsService{repo: repo, db: db}
}

func (s *WithdrawalsService) Create(username string, toAddress string, network string, amount decimal.Decimal) (*domain.Withdrawals, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	parsedNetwork := domain.StrToNetwork(network)
	if parsedNetwork.IsNone() {
		return nil, domain.ErrInvalidAddress
	}

	if !ValidateAddress(parsedNetwork, toAddress) {
		return nil, domain.ErrInvalidAddress
	}

	status := domain.WITHDRAWAL_SENT
	if amount.GreaterThan(autoSendLimit) {
		status = domain.WITHDRAWAL_MANUAL_REVIEW
	}

	withdrawal := &domain.Withdrawals{
		WithdrawalID: uuid.NewString(),
		Username:     username,
		Amount:       amount,
		To:           toAddress,
		Network:      parsedNetwork.ToString(),
		Status:       status,
	}

	if err := s.repo.Create(s.db, withdrawal); err != nil {
		return nil, err
	}

	return withdrawal, nil
}

// ValidateAddress checks the destination per network. BEP20/ERC20 are both
// EVM chains, TRC20 base58 addresses start with T and are 34 chars.
func ValidateAddress(network domain.Network, address string) bool {
	switch network {
	case domain.NETWORK_ERC20, domain.NETWORK_BEP20:
		return common.IsHexAddress(address)
	case domain.NETWORK_TRC20:
		return len(address) == 34 && strings.HasPrefix(address, "T")
	default:
		return false
	}
}
