package repository

import (
	"context"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
)

type RewardTransactionRepository interface {
	Create(ctx context.Context, data *entity.RewardTransaction) error
	// GetByUserID returns the newest entries first.
	GetByUserID(ctx context.Context, userID string, limit int) ([]entity.RewardTransaction, error)
}

type rewardTransactionRepository struct{}

func NewRewardTransactionRepository() *rewardTransactionRepository {
	return &rewardTransactionRepository{}
}

func (r *rewardTransactionRepository) Create(ctx context.Context, data *entity.RewardTransaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *rewardTransactionRepository) GetByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.RewardTransaction, error) {
	var result []entity.RewardTransaction
	tx := xcontext.DB(ctx).Where("user_id=?", userID).Order("id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
