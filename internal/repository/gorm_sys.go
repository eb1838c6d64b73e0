package repository

import (
	"errors"

	"gorm.io/gorm"

	"appypay-service/internal/models"
)

type GormSysStore struct {
	DB *gorm.DB
}

func NewGormSysStore(db *gorm.DB) *GormSysStore {
	return &GormSysStore{DB: db}
}

func (s *GormSysStore) MaxMerchantIDWithPrefix(prefix string) (string, error) {
	var row models.SysPayment
	err := s.DB.Where("merchant_transaction_id LIKE ?", prefix+"%").
		Order("id desc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.MerchantTransactionID, nil
}

func (s *GormSysStore) ReserveMerchantID(merchantID string) error {
	err := s.DB.Create(&models.SysPayment{
		MerchantTransactionID: merchantID,
		Status:                models.StatusPending,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *GormSysStore) ExistsMerchantID(merchantID string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.SysPayment{}).
		Where("merchant_transaction_id = ?", merchantID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormSysStore) ExistsReference(reference string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.SysPayment{}).
		Where("reference_number = ?", reference).
		Count(&count).Error
	return count > 0, err
}

func (s *GormSysStore) UpsertByMerchantID(p *models.SysPayment) error {
	var existing models.SysPayment
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
		return s.DB.Model(&models.SysPayment{}).
			Where("merchant_transaction_id = ?", p.MerchantTransactionID).
			Updates(p).Error
	}
	return err
}

func (s *GormSysStore) FindByMerchantID(merchantID string) (*models.SysPayment, error) {
	var row models.SysPayment
	err := s.DB.Where("merchant_transaction_id = ?", merchantID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
