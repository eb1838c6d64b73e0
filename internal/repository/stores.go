package repository

import (
	"errors"

	"appypay-service/internal/models"
)

// ErrDuplicate is returned by ReserveMerchantID when the candidate id is
// already taken. Callers treat it the same way as gateway code 726 and
// move on to the next candidate.
var ErrDuplicate = errors.New("repository: duplicate key")

// TokenStore persists the single active OAuth2 credential.
type TokenStore interface {
	// FindActive returns the row flagged istoken = true, or nil when none.
	FindActive() (*models.Token, error)
	// UpsertActive replaces the active row (keyed on the istoken flag).
	UpsertActive(token string, expiresOn, expiresIn int64) error
	// InvalidateExpired flips istoken = false on rows whose expires_on has
	// passed and reports how many rows changed.
	InvalidateExpired(now int64) (int64, error)
}

// MethodStore persists the mirrored gateway applications.
type MethodStore interface {
	FindByMethod(method string) (*models.PaymentMethod, error)
	FindDefault() (*models.PaymentMethod, error)
	UpsertByHash(m *models.PaymentMethod) error
	List() ([]models.PaymentMethod, error)
}

// PaymentStore persists locally created payments (the success-path write).
type PaymentStore interface {
	UpsertByMerchantID(p *models.Payment) error
	FindByMerchantID(merchantID string) (*models.Payment, error)
	FindByReference(reference string) ([]models.Payment, error)
	List(page, limit int) ([]models.Payment, int64, error)
}

// SysStore persists the full remote mirror and backs id generation.
type SysStore interface {
	// MaxMerchantIDWithPrefix returns the merchant transaction id of the
	// most recently inserted row matching prefix, or "" when none exists.
	MaxMerchantIDWithPrefix(prefix string) (string, error)
	// ReserveMerchantID inserts a bare row for the candidate id, failing
	// with ErrDuplicate when the id is already taken.
	ReserveMerchantID(merchantID string) error
	ExistsMerchantID(merchantID string) (bool, error)
	ExistsReference(reference string) (bool, error)
	UpsertByMerchantID(p *models.SysPayment) error
	FindByMerchantID(merchantID string) (*models.SysPayment, error)
}

// RequestLogStore records gateway request/response pairs for audit.
type RequestLogStore interface {
	Record(entry *models.RequestLog)
}
