package services

import (
	"log"

	"gorm.io/gorm"

	"appypay-service/internal/models"
)

// UpdateRule declares one post-success side effect: when the mirrored
// payment's PaymentKey equals ExpectedValue, set Column to NewValue on
// every row of Table whose Column matches.
type UpdateRule struct {
	Table         string
	Column        string
	PaymentKey    string
	ExpectedValue interface{}
	NewValue      interface{}
}

// StatusUpdater applies declarative update rules to foreign tables when
// a mirrored payment reaches Success (e.g. flipping an order's paid
// flag). Rule failures are logged and never propagate.
type StatusUpdater struct {
	DB    *gorm.DB
	rules []UpdateRule
}

func NewStatusUpdater(db *gorm.DB) *StatusUpdater {
	return &StatusUpdater{DB: db}
}

func (u *StatusUpdater) AddRule(rule UpdateRule) {
	u.rules = append(u.rules, rule)
}

// ExecuteOnSuccess applies every matching rule. A payment in any other
// status is a no-op.
func (u *StatusUpdater) ExecuteOnSuccess(payment *models.SysPayment) {
	if payment.Status != models.StatusSuccess {
		return
	}

	for _, rule := range u.rules {
		u.apply(payment, rule)
	}
}

func (u *StatusUpdater) apply(payment *models.SysPayment, rule UpdateRule) {
	actual, ok := PaymentKeyValue(payment, rule.PaymentKey)
	if !ok || actual != rule.ExpectedValue {
		return
	}
	if u.DB == nil {
		return
	}

	err := u.DB.Table(rule.Table).
		Where(rule.Column+" = ?", actual).
		Update("status", rule.NewValue).Error
	if err != nil {
		log.Printf("[apypay] update rule failed for table %s: %v", rule.Table, err)
	}
}

// PaymentKeyValue resolves a dotted payment key against the mirror
// record, matching the key paths the rule list uses.
func PaymentKeyValue(p *models.SysPayment, key string) (interface{}, bool) {
	switch key {
	case "merchantTransactionId":
		return p.MerchantTransactionID, true
	case "status":
		return p.Status, true
	case "amount":
		return p.Amount, true
	case "currency":
		return p.Currency, true
	case "reference.referenceNumber":
		return p.ReferenceNumber, true
	case "reference.entity":
		return p.ReferenceEntity, true
	default:
		return nil, false
	}
}
