package repository

import (
	"errors"

	"gorm.io/gorm"

	"appypay-service/internal/models"
)

type GormTokenStore struct {
	DB *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{DB: db}
}

func (s *GormTokenStore) FindActive() (*models.Token, error) {
	var token models.Token
	err := s.DB.Where("istoken = ?", true).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *GormTokenStore) UpsertActive(token string, expiresOn, expiresIn int64) error {
	var existing models.Token
	err := s.DB.Where("istoken = ?", true).First(&existing).Error
	if err == nil {
		return s.DB.Model(&existing).Updates(map[string]interface{}{
			"token":      token,
			"expires_on": expiresOn,
			"expires_in": expiresIn,
			"istoken":    true,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.DB.Create(&models.Token{
		Token:     token,
		ExpiresOn: expiresOn,
		ExpiresIn: expiresIn,
		IsToken:   true,
	}).Error
}

func (s *GormTokenStore) InvalidateExpired(now int64) (int64, error) {
	res := s.DB.Model(&models.Token{}).
		Where("expires_on < ?", now).
		Update("istoken", false)
	return res.RowsAffected, res.Error
}
