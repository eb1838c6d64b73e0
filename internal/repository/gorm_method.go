package repository

import (
	"errors"

	"gorm.io/gorm"

	"appypay-service/internal/models"
)

type GormMethodStore struct {
	DB *gorm.DB
}

func NewGormMethodStore(db *gorm.DB) *GormMethodStore {
	return &GormMethodStore{DB: db}
}

func (s *GormMethodStore) FindByMethod(method string) (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	err := s.DB.Where("method = ?", method).First(&pm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

func (s *GormMethodStore) FindDefault() (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	err := s.DB.Where("isDefault = ?", true).First(&pm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

func (s *GormMethodStore) UpsertByHash(m *models.PaymentMethod) error {
	var existing models.PaymentMethod
	err := s.DB.Where("hash = ?", m.Hash).First(&existing).Error
	if err == nil {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
		return s.DB.Save(m).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.DB.Create(m).Error
}

func (s *GormMethodStore) List() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := s.DB.Order("name").Find(&methods).Error
	return methods, err
}
