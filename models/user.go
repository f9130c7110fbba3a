package models

import "time"

// User is the account behind a bearer token. The demo build only ever
// resolves the single creator account returned by DemoUser.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null;default:'fan'" json:"role"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

const (
	RoleFan     = "fan"
	RoleCreator = "creator"
)

// DemoUserID keys all per-user economy and reward state in the demo.
const DemoUserID = "dev"

func DemoUser() *User {
	return &User{ID: 1, Email: "demo@synthara.ai", Role: RoleCreator}
}
