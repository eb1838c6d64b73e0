package models

import (
	"time"
)

// Payment is the local record written on the charge-creation success path.
// MerchantTransactionID is the idempotency key; rows are only ever upserted
// on it, never hard-deleted.
type Payment struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantTransactionID string    `gorm:"column:merchant_transaction_id;size:100;uniqueIndex;not null" json:"merchantTransactionId"`
	Type                  string    `gorm:"column:type;size:100" json:"type"`
	Description           string    `gorm:"column:description;type:text" json:"description"`
	Status                string    `gorm:"column:status;size:50" json:"status"`
	Amount                float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Reference             string    `gorm:"column:reference;size:100;index" json:"reference"`
	DueDate               time.Time `gorm:"column:due_date" json:"dueDate"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "apy_payments"
}
