package entity

import "time"

type Wallet struct {
	UserID      string `gorm:"primaryKey"`
	DisplayName string
	Balance     uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
