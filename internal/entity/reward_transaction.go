package entity

type RewardTransaction struct {
	SnowFlakeBase

	UserID  string `gorm:"index"`
	QuestID string
	Amount  uint64
}
