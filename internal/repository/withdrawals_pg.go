package repository

import (
	"gateway/internal/domain"

	"gorm.io/gorm"
)

type WithdrawalsRepo struct {
}

func InitWithdrawalsRepo() *WithdrawalsRepo {
	return &WithdrawalsRepo{}
}

func (r *WithdrawalsRepo) Create(tx *gorm.DB, withdrawal *domain.Withdrawals) error {
	return tx.Create(withdrawal).Error
}

func (r *WithdrawalsRepo) Find(tx *gorm.DB, withdrawalId string) (*domain.Withdrawals, error) {
	var withdrawal domain.Withdrawals
	return &withdrawal, tx.Where(&domain.Withdrawals{WithdrawalID: withdrawalId}).First(&withdrawal).Error
}
