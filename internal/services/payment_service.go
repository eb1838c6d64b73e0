package services

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"appypay-service/internal/config"
	"appypay-service/internal/gateway"
	"appypay-service/internal/models"
	"appypay-service/internal/repository"
)

// SyncEnqueuer submits a background reconciliation run. The orchestrator
// fires it after a successful charge and never waits on the result.
type SyncEnqueuer interface {
	EnqueuePaymentSync() error
}

// CreatePaymentRequest is the caller-facing charge-creation input.
type CreatePaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Method      string  `json:"method"`
	Renewal     bool    `json:"renewal"`
}

// PaymentResult is the success payload of a created charge.
type PaymentResult struct {
	Message    string `json:"message"`
	Status     string `json:"status"`
	Reference  string `json:"reference"`
	Entity     string `json:"entity"`
	Expiration string `json:"expiration"`
}

// PaymentService drives charge creation: id assignment, token lookup,
// the bounded retry loop around the gateway call, and the side-effecting
// persistence on success.
type PaymentService struct {
	cfg      *config.Config
	auth     *AuthService
	ids      *IdService
	gw       Gateway
	methods  repository.MethodStore
	payments repository.PaymentStore
	validate *validator.Validate

	// Optional collaborators, wired in main.
	Logs     repository.RequestLogStore
	Enqueuer SyncEnqueuer
}

func NewPaymentService(
	cfg *config.Config,
	auth *AuthService,
	ids *IdService,
	gw Gateway,
	methods repository.MethodStore,
	payments repository.PaymentStore,
) *PaymentService {
	return &PaymentService{
		cfg:      cfg,
		auth:     auth,
		ids:      ids,
		gw:       gw,
		methods:  methods,
		payments: payments,
		validate: validator.New(),
	}
}

// CreatePayment creates a charge with bounded retries on duplicate
// merchant-id (726) and duplicate reference (763) responses.
func (s *PaymentService) CreatePayment(req CreatePaymentRequest) (*PaymentResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	prefix := s.cfg.MerchantPrefix(req.Renewal)
	if !ValidPrefix(prefix) {
		return nil, &ConfigurationError{Reason: "merchant id prefix must be two letters, got " + strconv.Quote(prefix)}
	}
	merchantID, err := s.ids.GenerateMerchantID(prefix)
	if err != nil {
		return nil, err
	}

	methodType, err := s.resolvePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	payload := &gateway.ChargePayload{
		MerchantTransactionID: merchantID,
		Amount:                req.Amount,
		Currency:              s.cfg.DefaultCurrency,
		Description:           req.Description,
		PaymentMethod:         methodType,
		PaymentInfo:           gateway.PaymentInfo{PaymentInfo1: req.Description},
	}

	classifier := &Classifier{IDs: s.ids, Prefix: prefix}
	correlationID := uuid.NewString()

	dupID, dupRef := 0, 0
	lastReason := ""
	lastCode := 0

	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		token, err := s.auth.AccessToken()
		if err != nil {
			return nil, err
		}

		resp, err := s.gw.CreateCharge(token, payload)
		if err != nil {
			log.Printf("[apypay] charge request failed (attempt %d): %v", attempt, err)
			return nil, &GatewayError{Message: "charge request failed"}
		}

		s.logRequest(correlationID, payload, resp)

		cls, err := classifier.Classify(payload, resp, dupID, dupRef)
		if err != nil {
			return nil, err
		}

		switch cls.Kind {
		case OutcomeSuccess:
			s.persistPayment(payload, resp)
			s.triggerSync()
			return buildResult(payload, resp), nil

		case OutcomeRetry:
			if cls.Reason == ReasonMerchantDuplicated {
				dupID++
			} else {
				dupRef++
			}
			lastReason, lastCode = cls.Reason, cls.Code
			log.Printf("[apypay] retrying payment (%s), attempt %d", cls.Reason, attempt+1)
			time.Sleep(s.cfg.RetryDelay)

		case OutcomeError:
			log.Printf("[apypay] payment failed: code=%d message=%q attempt=%d", cls.Code, cls.Message, attempt)
			return nil, &GatewayError{Code: cls.Code, Message: cls.Message}
		}
	}

	log.Printf("[apypay] max payment attempts reached: merchantId=%s reason=%s", payload.MerchantTransactionID, lastReason)
	return nil, &MaxRetriesError{Attempts: s.cfg.MaxRetries, Code: lastCode, Reason: lastReason}
}

// GetPayment looks up a locally mirrored payment by merchant id.
func (s *PaymentService) GetPayment(merchantID string) (*models.Payment, error) {
	return s.payments.FindByMerchantID(merchantID)
}

// SearchPayments finds local payments by merchant transaction id or, for
// searchType "reference", by reference number.
func (s *PaymentService) SearchPayments(value, searchType string) ([]models.Payment, error) {
	if searchType == "reference" {
		return s.payments.FindByReference(value)
	}
	payment, err := s.payments.FindByMerchantID(value)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return []models.Payment{}, nil
	}
	return []models.Payment{*payment}, nil
}

// ListPayments returns one page of local payments and the total count.
func (s *PaymentService) ListPayments(page, limit int) ([]models.Payment, int64, error) {
	return s.payments.List(page, limit)
}

func (s *PaymentService) validateRequest(req CreatePaymentRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		reason := "is invalid"
		switch fe.Tag() {
		case "required":
			reason = "is required"
		case "gt":
			reason = "must be greater than " + fe.Param()
		}
		return &ValidationError{Field: fe.Field(), Reason: reason}
	}
	return &ValidationError{Field: "request", Reason: err.Error()}
}

// resolvePaymentMethod looks up the requested method code, falling back
// to the record flagged as default. No default configured is fatal.
func (s *PaymentService) resolvePaymentMethod(method string) (string, error) {
	if method == "" {
		method = s.cfg.DefaultPaymentMethod
	}

	pm, err := s.methods.FindByMethod(method)
	if err != nil {
		return "", err
	}
	if pm != nil {
		return pm.Type, nil
	}

	fallback, err := s.methods.FindDefault()
	if err != nil {
		return "", err
	}
	if fallback == nil {
		log.Println("[apypay] no default payment method configured")
		return "", &ConfigurationError{Reason: "no default payment method configured"}
	}

	log.Printf("[apypay] payment method %q not found, using default %q", method, fallback.Method)
	return fallback.Type, nil
}

// persistPayment mirrors the accepted charge locally. Failures are
// logged only; they never fail the create call.
func (s *PaymentService) persistPayment(payload *gateway.ChargePayload, resp *gateway.ChargeResponse) {
	status := resp.ResponseStatus

	payment := &models.Payment{
		MerchantTransactionID: payload.MerchantTransactionID,
		Type:                  status.Source,
		Description:           payload.Description,
		Status:                status.Status,
		Amount:                payload.Amount,
	}
	if status.Reference != nil {
		payment.Reference = status.Reference.ReferenceNumber
		payment.DueDate = parseGatewayDate(status.Reference.DueDate, time.Now().AddDate(0, 0, 2))
	}

	if err := s.payments.UpsertByMerchantID(payment); err != nil {
		log.Printf("[apypay] payment sync failed: %v", err)
	}
}

// triggerSync fires the background reconciliation. Enqueue failures are
// logged and dropped.
func (s *PaymentService) triggerSync() {
	if s.Enqueuer == nil {
		return
	}
	if err := s.Enqueuer.EnqueuePaymentSync(); err != nil {
		log.Printf("[apypay] failed to enqueue payment sync: %v", err)
	}
}

func (s *PaymentService) logRequest(correlationID string, payload *gateway.ChargePayload, resp *gateway.ChargeResponse) {
	if s.Logs == nil {
		return
	}
	reqBytes, _ := json.Marshal(payload)
	respBytes, _ := json.Marshal(resp)
	s.Logs.Record(&models.RequestLog{
		CorrelationID: correlationID,
		Endpoint:      "/charges",
		Request:       string(reqBytes),
		Response:      string(respBytes),
		Status:        resp.HTTPStatus,
	})
}

func buildResult(payload *gateway.ChargePayload, resp *gateway.ChargeResponse) *PaymentResult {
	status := resp.ResponseStatus

	result := &PaymentResult{
		Message:   status.Message,
		Status:    status.Status,
		Reference: payload.PaymentInfo.ReferenceNumber,
	}
	if status.Reference != nil {
		result.Reference = status.Reference.ReferenceNumber
		result.Entity = status.Reference.Entity
		result.Expiration = status.Reference.DueDate
	}
	return result
}

// parseGatewayDate accepts the date formats the gateway emits.
func parseGatewayDate(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return fallback
}
