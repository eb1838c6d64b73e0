package models

import (
	"time"
)

// Token is the cached OAuth2 credential. At most one row carries
// istoken = true at a time; the upsert in the token store keys on that flag.
type Token struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"column:token;type:longtext;not null" json:"token"`
	ExpiresOn int64     `gorm:"column:expires_on;not null" json:"expires_on"`
	ExpiresIn int64     `gorm:"column:expires_in;default:0" json:"expires_in"`
	IsToken   bool      `gorm:"column:istoken;default:false;index" json:"istoken"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Token) TableName() string {
	return "apy_tokens"
}

// Expired reports whether the token's expires_on timestamp has passed.
func (t *Token) Expired(now int64) bool {
	return t.ExpiresOn < now
}
