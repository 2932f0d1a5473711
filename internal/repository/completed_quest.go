package repository

import (
	"context"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletedQuestRepository interface {
	// Add records a completion, or counts one more completion if the quest was
	// already completed.
	Add(ctx context.Context, userID, questID string, category entity.Category) error
	Exists(ctx context.Context, userID, questID string) (bool, error)
	Get(ctx context.Context, userID, questID string) (*entity.CompletedQuest, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.CompletedQuest, error)
}

type completedQuestRepository struct{}

func NewCompletedQuestRepository() *completedQuestRepository {
	return &completedQuestRepository{}
}

func (r *completedQuestRepository) Add(
	ctx context.Context, userID, questID string, category entity.Category,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "quest_id"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"times":      gorm.Expr("times + 1"),
				"updated_at": time.Now(),
			}),
		}).
		Create(&entity.CompletedQuest{
			UserID:   userID,
			QuestID:  questID,
			Category: category,
			Times:    1,
		}).Error
}

func (r *completedQuestRepository) Exists(ctx context.Context, userID, questID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.CompletedQuest{}).
		Where("user_id=? AND quest_id=?", userID, questID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *completedQuestRepository) Get(ctx context.Context, userID, questID string) (*entity.CompletedQuest, error) {
	var result entity.CompletedQuest
	err := xcontext.DB(ctx).Where("user_id=? AND quest_id=?", userID, questID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *completedQuestRepository) GetByUserID(ctx context.Context, userID string) ([]entity.CompletedQuest, error) {
	var result []entity.CompletedQuest
	err := xcontext.DB(ctx).Where("user_id=?", userID).Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
