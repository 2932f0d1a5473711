package repository

import (
	"context"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository interface {
	// Provision creates an empty wallet if the participant has none.
	Provision(ctx context.Context, userID string) error
	// UpsertDisplayName creates the wallet if needed. An empty name keeps the
	// known one.
	UpsertDisplayName(ctx context.Context, userID, displayName string) error
	Credit(ctx context.Context, userID, displayName string, amount uint64) error
	Get(ctx context.Context, userID string) (*entity.Wallet, error)
}

type walletRepository struct{}

func NewWalletRepository() *walletRepository {
	return &walletRepository{}
}

func (r *walletRepository) Provision(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Wallet{UserID: userID}).Error
}

func (r *walletRepository) UpsertDisplayName(ctx context.Context, userID, displayName string) error {
	if displayName == "" {
		return r.Provision(ctx, userID)
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"display_name": displayName,
				"updated_at":   time.Now(),
			}),
		}).
		Create(&entity.Wallet{UserID: userID, DisplayName: displayName}).Error
}

func (r *walletRepository) Credit(ctx context.Context, userID, displayName string, amount uint64) error {
	updates := map[string]any{
		"balance":    gorm.Expr("balance + ?", amount),
		"updated_at": time.Now(),
	}
	if displayName != "" {
		updates["display_name"] = displayName
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(&entity.Wallet{UserID: userID, DisplayName: displayName, Balance: amount}).Error
}

func (r *walletRepository) Get(ctx context.Context, userID string) (*entity.Wallet, error) {
	var result entity.Wallet
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
