package entity

import "time"

// InteractionProgress is the cursor of a participant inside a multi-step
// quest. Step starts at 1.
type InteractionProgress struct {
	UserID           string `gorm:"primaryKey"`
	QuestID          string `gorm:"primaryKey"`
	Step             int
	AwaitingReaction bool
	UpdatedAt        time.Time
}
