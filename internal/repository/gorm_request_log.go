package repository

import (
	"log"

	"gorm.io/gorm"

	"appypay-service/internal/models"
)

type GormRequestLogStore struct {
	DB *gorm.DB
}

func NewGormRequestLogStore(db *gorm.DB) *GormRequestLogStore {
	return &GormRequestLogStore{DB: db}
}

// Record writes an audit entry. Failures are logged and swallowed; audit
// writes must never fail the primary operation.
func (s *GormRequestLogStore) Record(entry *models.RequestLog) {
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("[apypay] request log write failed: %v", err)
	}
}
