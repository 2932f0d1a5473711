package entity

import "time"

// CompletedQuest is never deleted. Times counts completions of repeatable
// quests.
type CompletedQuest struct {
	UserID    string `gorm:"primaryKey"`
	QuestID   string `gorm:"primaryKey"`
	Category  Category
	Times     uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}
