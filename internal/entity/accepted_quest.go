package entity

import "time"

// AcceptedQuest is a quest a participant is currently working on. The
// category is the one the quest had when it was accepted.
type AcceptedQuest struct {
	UserID    string `gorm:"primaryKey"`
	QuestID   string `gorm:"primaryKey"`
	Category  Category
	CreatedAt time.Time
}
