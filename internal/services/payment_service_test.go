package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"appypay-service/internal/gateway"
	"appypay-service/internal/models"
)

type paymentTestEnv struct {
	svc      *PaymentService
	gw       *fakeGateway
	sys      *fakeSysStore
	payments *fakePaymentStore
	logs     *fakeLogStore
	enqueuer *fakeEnqueuer
}

func newPaymentTestEnv() *paymentTestEnv {
	cfg := testConfig()
	sys := newFakeSysStore()
	tokens := &fakeTokenStore{}
	methods := &fakeMethodStore{methods: []models.PaymentMethod{
		{Hash: "app-1", Name: "Referência", Method: "REF_", Type: "REF_key1", IsActive: true, IsDefault: true},
		{Hash: "app-2", Name: "Multicaixa Express", Method: "GPO_", Type: "GPO_key2", IsActive: true},
	}}
	payments := newFakePaymentStore()
	logs := &fakeLogStore{}
	enqueuer := &fakeEnqueuer{}

	gw := &fakeGateway{
		tokenResp: &gateway.TokenResponse{AccessToken: "tok", ExpiresIn: "3600", ExpiresOn: "9999999999"},
	}

	auth := NewAuthService(cfg, tokens, gw)
	ids := NewIdService(sys)
	svc := NewPaymentService(cfg, auth, ids, gw, methods, payments)
	svc.Logs = logs
	svc.Enqueuer = enqueuer

	return &paymentTestEnv{svc: svc, gw: gw, sys: sys, payments: payments, logs: logs, enqueuer: enqueuer}
}

func successChargeResponse() *gateway.ChargeResponse {
	return &gateway.ChargeResponse{
		ID:         "ext-1",
		HTTPStatus: http.StatusOK,
		ResponseStatus: gateway.ResponseStatus{
			Successful: true,
			Code:       101,
			Message:    "Pagamento criado",
			Status:     "Pending",
			Source:     "REFERENCE",
			Reference: &gateway.ChargeReference{
				ReferenceNumber: "987654321",
				Entity:          "00083",
				DueDate:         "2026-09-01T00:00:00",
			},
		},
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	env := newPaymentTestEnv()

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 0, Description: "subscription"})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500})
	assert.True(t, errors.As(err, &validationErr))

	// No transport call is made for invalid input.
	assert.Equal(t, 0, len(env.gw.chargePayloads))
	assert.Equal(t, 0, env.gw.exchangeCalls)
}

func TestCreatePaymentRejectsBadPrefix(t *testing.T) {
	env := newPaymentTestEnv()
	env.svc.cfg.PrefixDefault = "P1"

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
	assert.Equal(t, 0, len(env.gw.chargePayloads))
}

func TestCreatePaymentSuccess(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{successChargeResponse()}

	result, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	assert.Nil(t, err)
	assert.Equal(t, "Pagamento criado", result.Message)
	assert.Equal(t, "987654321", result.Reference)
	assert.Equal(t, "00083", result.Entity)
	assert.Equal(t, "2026-09-01T00:00:00", result.Expiration)

	// One charge call with the assigned sequential id and the resolved
	// default method.
	assert.Equal(t, 1, len(env.gw.chargePayloads))
	sent := env.gw.chargePayloads[0]
	assert.Equal(t, "PS000000001", sent.MerchantTransactionID)
	assert.Equal(t, "REF_key1", sent.PaymentMethod)
	assert.Equal(t, "AOA", sent.Currency)
	assert.Equal(t, "subscription", sent.PaymentInfo.PaymentInfo1)

	// Success is mirrored locally and the background sync is queued.
	stored, _ := env.payments.FindByMerchantID("PS000000001")
	assert.NotNil(t, stored)
	assert.Equal(t, "987654321", stored.Reference)
	assert.Equal(t, 1, env.enqueuer.calls)
	assert.Equal(t, 1, len(env.logs.entries))
}

func TestCreatePaymentRenewalPrefix(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{successChargeResponse()}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "renewal", Renewal: true})
	assert.Nil(t, err)
	assert.Equal(t, "PC000000001", env.gw.chargePayloads[0].MerchantTransactionID)
}

func TestCreatePaymentRetriesOnDuplicateMerchantID(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{
		chargeResponse(http.StatusBadRequest, 726, false, "merchantTransactionId duplicated"),
		successChargeResponse(),
	}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	assert.Nil(t, err)

	assert.Equal(t, 2, len(env.gw.chargePayloads))
	first := env.gw.chargePayloads[0].MerchantTransactionID
	second := env.gw.chargePayloads[1].MerchantTransactionID
	assert.Equal(t, "PS000000001", first)
	assert.Equal(t, "PS000000002", second)
}

func TestCreatePaymentRetriesOnDuplicateReference(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{
		chargeResponse(http.StatusBadRequest, 763, false, "reference duplicated"),
		successChargeResponse(),
	}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	assert.Nil(t, err)

	assert.Equal(t, 2, len(env.gw.chargePayloads))
	// The merchant id survives a reference retry; only the reference
	// changes.
	assert.Equal(t, env.gw.chargePayloads[0].MerchantTransactionID, env.gw.chargePayloads[1].MerchantTransactionID)
	assert.NotEqual(t, env.gw.chargePayloads[0].PaymentInfo.ReferenceNumber, env.gw.chargePayloads[1].PaymentInfo.ReferenceNumber)
}

func TestCreatePaymentExhaustsRetries(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{
		chargeResponse(http.StatusBadRequest, 726, false, "duplicated"),
	}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	var retriesErr *MaxRetriesError
	assert.True(t, errors.As(err, &retriesErr))
	assert.Equal(t, 3, retriesErr.Attempts)
	assert.Equal(t, 726, retriesErr.Code)
	assert.Equal(t, ReasonMerchantDuplicated, retriesErr.Reason)
	assert.Equal(t, 3, len(env.gw.chargePayloads))
}

func TestCreatePaymentTerminalGatewayError(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{
		chargeResponse(http.StatusBadRequest, 400, false, "invalid amount"),
	}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	var gatewayErr *GatewayError
	assert.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, 400, gatewayErr.Code)
	assert.Equal(t, "invalid amount", gatewayErr.Message)
	assert.Equal(t, 1, len(env.gw.chargePayloads))
}

func TestCreatePaymentAuthFailureIsNotRetried(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.tokenResp = nil
	env.gw.tokenErr = errors.New("invalid_client")

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, 0, len(env.gw.chargePayloads))
	assert.Equal(t, 1, env.gw.exchangeCalls)
}

func TestCreatePaymentTransportFailure(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeErr = errors.New("connection refused")

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	var gatewayErr *GatewayError
	assert.True(t, errors.As(err, &gatewayErr))
}

func TestCreatePaymentUnknownMethodFallsBackToDefault(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{successChargeResponse()}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription", Method: "NOPE_"})
	assert.Nil(t, err)
	assert.Equal(t, "REF_key1", env.gw.chargePayloads[0].PaymentMethod)
}

func TestCreatePaymentExplicitMethod(t *testing.T) {
	env := newPaymentTestEnv()
	env.gw.chargeResponses = []*gateway.ChargeResponse{successChargeResponse()}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription", Method: "GPO_"})
	assert.Nil(t, err)
	assert.Equal(t, "GPO_key2", env.gw.chargePayloads[0].PaymentMethod)
}

func TestCreatePaymentNoDefaultMethod(t *testing.T) {
	env := newPaymentTestEnv()
	env.svc.methods = &fakeMethodStore{}

	_, err := env.svc.CreatePayment(CreatePaymentRequest{Amount: 1500, Description: "subscription"})
	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
	assert.Equal(t, 0, len(env.gw.chargePayloads))
}

func TestSearchPayments(t *testing.T) {
	env := newPaymentTestEnv()
	env.payments.payments["PS000000007"] = models.Payment{
		MerchantTransactionID: "PS000000007",
		Reference:             "555444333",
	}

	byID, err := env.svc.SearchPayments("PS000000007", "")
	assert.Nil(t, err)
	assert.Len(t, byID, 1)

	byRef, err := env.svc.SearchPayments("555444333", "reference")
	assert.Nil(t, err)
	assert.Len(t, byRef, 1)

	missing, err := env.svc.SearchPayments("PS999999999", "")
	assert.Nil(t, err)
	assert.Len(t, missing, 0)
}
