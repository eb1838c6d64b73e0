package models

import (
	"time"
)

// PaymentMethod mirrors one gateway application from GET /applications.
// Rows are upserted by Hash and never deleted; exactly one row should
// carry IsDefault = true.
type PaymentMethod struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Hash      string    `gorm:"column:hash;size:150;uniqueIndex;not null" json:"hash"`
	Name      string    `gorm:"column:name;size:200;not null" json:"name"`
	Method    string    `gorm:"column:method;size:100;not null" json:"method"`
	Type      string    `gorm:"column:type;size:200" json:"type"`
	IsActive  bool      `gorm:"column:isActive;default:false" json:"isActive"`
	IsDefault bool      `gorm:"column:isDefault;default:false" json:"isDefault"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentMethod) TableName() string {
	return "apy_methods"
}
