package models

import "time"

// UserState backs the SQL state backend: one row per user holding the reward
// tickets and the economy snapshot as JSON documents.
type UserState struct {
	UserID    string           `gorm:"primaryKey;type:varchar(64)"`
	Tickets   []RewardTicket   `gorm:"serializer:json"`
	Seeded    bool             `gorm:"not null;default:false"`
	Economy   *EconomySnapshot `gorm:"serializer:json"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime"`
}
