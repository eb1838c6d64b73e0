package repository

import (
	"errors"

	"gorm.io/gorm"

	"appypay-service/internal/models"
)

type GormPaymentStore struct {
	DB *gorm.DB
}

func NewGormPaymentStore(db *gorm.DB) *GormPaymentStore {
	return &GormPaymentStore{DB: db}
}

func (s *GormPaymentStore) UpsertByMerchantID(p *models.Payment) error {
	var existing models.Payment
	err := s.DB.Where("merchant_transaction_id = ?", p.MerchantTransactionID).First(&existing).Error
	if err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		return s.DB.Save(p).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	err = s.DB.Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent writer inserted the same merchant id first; both
		// converge on the same upsert target.
		return s.DB.Model(&models.Payment{}).
			Where("merchant_transaction_id = ?", p.MerchantTransactionID).
			Updates(p).Error
	}
	return err
}

func (s *GormPaymentStore) FindByMerchantID(merchantID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Where("merchant_transaction_id = ?", merchantID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *GormPaymentStore) FindByReference(reference string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("reference = ?", reference).Find(&payments).Error
	return payments, err
}

func (s *GormPaymentStore) List(page, limit int) ([]models.Payment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := s.DB.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := s.DB.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error
	return payments, total, err
}
