package repository

import (
	"context"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionProgressRepository interface {
	// Upsert starts the cursor again if it already exists.
	Upsert(ctx context.Context, data *entity.InteractionProgress) error
	// Advance moves the cursor to the next step only if it is still at
	// fromStep. It returns false when another trigger moved it first.
	Advance(ctx context.Context, userID, questID string, fromStep int, awaitingReaction bool) (bool, error)
	Delete(ctx context.Context, userID, questID string) error
	Get(ctx context.Context, userID, questID string) (*entity.InteractionProgress, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.InteractionProgress, error)
}

type interactionProgressRepository struct{}

func NewInteractionProgressRepository() *interactionProgressRepository {
	return &interactionProgressRepository{}
}

func (r *interactionProgressRepository) Upsert(ctx context.Context, data *entity.InteractionProgress) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "quest_id"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"step":              data.Step,
				"awaiting_reaction": data.AwaitingReaction,
				"updated_at":        time.Now(),
			}),
		}).
		Create(data).Error
}

func (r *interactionProgressRepository) Advance(
	ctx context.Context, userID, questID string, fromStep int, awaitingReaction bool,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.InteractionProgress{}).
		Where("user_id=? AND quest_id=? AND step=?", userID, questID, fromStep).
		Updates(map[string]any{
			"step":              gorm.Expr("step + 1"),
			"awaiting_reaction": awaitingReaction,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *interactionProgressRepository) Delete(ctx context.Context, userID, questID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND quest_id=?", userID, questID).
		Delete(&entity.InteractionProgress{}).Error
}

func (r *interactionProgressRepository) Get(
	ctx context.Context, userID, questID string,
) (*entity.InteractionProgress, error) {
	var result entity.InteractionProgress
	err := xcontext.DB(ctx).Where("user_id=? AND quest_id=?", userID, questID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *interactionProgressRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.InteractionProgress, error) {
	var result []entity.InteractionProgress
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
