package models

import (
	"time"
)

// RequestLog is an audit record of one gateway call.
type RequestLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CorrelationID string    `gorm:"column:correlation_id;size:64;index" json:"correlation_id"`
	Endpoint      string    `gorm:"column:endpoint;size:255" json:"endpoint"`
	Request       string    `gorm:"column:request;type:longtext" json:"request"`
	Response      string    `gorm:"column:response;type:longtext" json:"response"`
	Status        int       `gorm:"column:status;default:0" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RequestLog) TableName() string {
	return "apy_request_logs"
}
