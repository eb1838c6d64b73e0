package models

import (
	"time"
)

// Payment status values as reported by the gateway.
const (
	StatusPending   = "Pending"
	StatusRequested = "Requested"
	StatusSuccess   = "Success"
	StatusFailed    = "Failed"
)

// SysPayment is the full mirror of one remote charge, refreshed by the
// reconciliation sync. It is also the table the id generator reads when
// deriving the next prefixed merchant transaction id, and the one it
// reserves candidate ids in.
type SysPayment struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID            string    `gorm:"column:external_id;size:100;index" json:"externalId"`
	MerchantTransactionID string    `gorm:"column:merchant_transaction_id;size:100;uniqueIndex;not null" json:"merchantTransactionId"`
	Type                  string    `gorm:"column:type;size:100" json:"type"`
	Operation             string    `gorm:"column:operation;size:100" json:"operation"`
	Amount                float64   `gorm:"column:amount;type:decimal(20,2)" json:"amount"`
	Currency              string    `gorm:"column:currency;size:10" json:"currency"`
	Status                string    `gorm:"column:status;size:50" json:"status"`
	Description           string    `gorm:"column:description;type:text" json:"description"`
	PaymentMethod         string    `gorm:"column:payment_method;size:100" json:"paymentMethod"`
	Disputes              bool      `gorm:"column:disputes;default:false" json:"disputes"`
	ApplicationFeeAmount  float64   `gorm:"column:application_fee_amount;type:decimal(20,2);default:0.00" json:"applicationFeeAmount"`
	Options               string    `gorm:"column:options;type:longtext" json:"options"`
	ReferenceNumber       string    `gorm:"column:reference_number;size:100;index" json:"referenceNumber"`
	ReferenceEntity       string    `gorm:"column:reference_entity;size:20" json:"referenceEntity"`
	ReferenceDueDate      time.Time `gorm:"column:reference_due_date" json:"referenceDueDate"`
	CreatedDate           time.Time `gorm:"column:created_date" json:"createdDate"`
	UpdatedDate           time.Time `gorm:"column:updated_date" json:"updatedDate"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SysPayment) TableName() string {
	return "apy_sys"
}
