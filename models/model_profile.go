package models

import "time"

// ModelProfile is a creator ("model") page. Tags are stored comma-joined.
type ModelProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Tagline   string    `gorm:"not null" json:"tagline"`
	Tags      string    `gorm:"default:''" json:"-"`
	Bio       *string   `json:"bio"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type LoRAAsset struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ModelID          uint      `gorm:"index;not null" json:"model_id"`
	Version          string    `gorm:"not null" json:"version"`
	PassportMetadata string    `gorm:"type:text" json:"passport_metadata"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// GoldNFTDrop status: upcoming | live | sold_out
type GoldNFTDrop struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ModelID   uint      `gorm:"index;not null" json:"model_id"`
	Price     float64   `json:"price"`
	Supply    int       `json:"supply"`
	Remaining int       `json:"remaining"`
	Status    string    `gorm:"default:'upcoming'" json:"status"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type Auction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ModelID    uint      `gorm:"index;not null" json:"model_id"`
	CurrentBid float64   `json:"current_bid"`
	EndsAt     time.Time `json:"ends_at"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// GameEvent is a joinable game room.
type GameEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	RequiredGold int       `gorm:"default:0" json:"required_gold"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}
