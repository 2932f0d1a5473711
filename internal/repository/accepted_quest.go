package repository

import (
	"context"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AcceptedQuestRepository interface {
	// Add returns false if the participant had already accepted the quest.
	Add(ctx context.Context, data *entity.AcceptedQuest) (bool, error)
	// Remove returns false if there was nothing to remove. Only one of two
	// concurrent removals of the same quest gets true.
	Remove(ctx context.Context, userID, questID string) (bool, error)
	Get(ctx context.Context, userID, questID string) (*entity.AcceptedQuest, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.AcceptedQuest, error)
}

type acceptedQuestRepository struct{}

func NewAcceptedQuestRepository() *acceptedQuestRepository {
	return &acceptedQuestRepository{}
}

func (r *acceptedQuestRepository) Add(ctx context.Context, data *entity.AcceptedQuest) (bool, error) {
	tx := xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *acceptedQuestRepository) Remove(ctx context.Context, userID, questID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND quest_id=?", userID, questID).
		Delete(&entity.AcceptedQuest{})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *acceptedQuestRepository) Get(ctx context.Context, userID, questID string) (*entity.AcceptedQuest, error) {
	var result entity.AcceptedQuest
	err := xcontext.DB(ctx).Where("user_id=? AND quest_id=?", userID, questID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *acceptedQuestRepository) GetByUserID(ctx context.Context, userID string) ([]entity.AcceptedQuest, error) {
	var result []entity.AcceptedQuest
	err := xcontext.DB(ctx).Where("user_id=?", userID).Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
