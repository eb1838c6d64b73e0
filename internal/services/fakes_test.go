package services

import (
	"errors"
	"strings"

	"appypay-service/internal/gateway"
	"appypay-service/internal/models"
	"appypay-service/internal/repository"
)

// In-memory store fakes. They keep the same nil-on-missing contract as
// the gorm implementations.

type fakeTokenStore struct {
	rows []models.Token
}

func (f *fakeTokenStore) FindActive() (*models.Token, error) {
	for i := range f.rows {
		if f.rows[i].IsToken {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenStore) UpsertActive(token string, expiresOn, expiresIn int64) error {
	for i := range f.rows {
		if f.rows[i].IsToken {
			f.rows[i].Token = token
			f.rows[i].ExpiresOn = expiresOn
			f.rows[i].ExpiresIn = expiresIn
			return nil
		}
	}
	f.rows = append(f.rows, models.Token{
		ID:        uint(len(f.rows) + 1),
		Token:     token,
		ExpiresOn: expiresOn,
		ExpiresIn: expiresIn,
		IsToken:   true,
	})
	return nil
}

func (f *fakeTokenStore) InvalidateExpired(now int64) (int64, error) {
	var n int64
	for i := range f.rows {
		if f.rows[i].IsToken && f.rows[i].ExpiresOn < now {
			f.rows[i].IsToken = false
			n++
		}
	}
	return n, nil
}

type fakeMethodStore struct {
	methods []models.PaymentMethod
}

func (f *fakeMethodStore) FindByMethod(method string) (*models.PaymentMethod, error) {
	for i := range f.methods {
		if f.methods[i].Method == method {
			m := f.methods[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMethodStore) FindDefault() (*models.PaymentMethod, error) {
	for i := range f.methods {
		if f.methods[i].IsDefault {
			m := f.methods[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMethodStore) UpsertByHash(m *models.PaymentMethod) error {
	for i := range f.methods {
		if f.methods[i].Hash == m.Hash {
			f.methods[i] = *m
			return nil
		}
	}
	f.methods = append(f.methods, *m)
	return nil
}

func (f *fakeMethodStore) List() ([]models.PaymentMethod, error) {
	return append([]models.PaymentMethod{}, f.methods...), nil
}

type fakePaymentStore struct {
	payments map[string]models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[string]models.Payment{}}
}

func (f *fakePaymentStore) UpsertByMerchantID(p *models.Payment) error {
	f.payments[p.MerchantTransactionID] = *p
	return nil
}

func (f *fakePaymentStore) FindByMerchantID(merchantID string) (*models.Payment, error) {
	if p, ok := f.payments[merchantID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakePaymentStore) FindByReference(reference string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.Reference == reference {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) List(page, limit int) ([]models.Payment, int64, error) {
	var out []models.Payment
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type fakeSysStore struct {
	merchantIDs []string
	references  map[string]bool
	mirrors     map[string]models.SysPayment

	// referenceCollisions forces ExistsReference to report taken for the
	// first N lookups.
	referenceCollisions int
	reserveErr          error
}

func newFakeSysStore() *fakeSysStore {
	return &fakeSysStore{
		references: map[string]bool{},
		mirrors:    map[string]models.SysPayment{},
	}
}

func (f *fakeSysStore) MaxMerchantIDWithPrefix(prefix string) (string, error) {
	for i := len(f.merchantIDs) - 1; i >= 0; i-- {
		if strings.HasPrefix(f.merchantIDs[i], prefix) {
			return f.merchantIDs[i], nil
		}
	}
	return "", nil
}

func (f *fakeSysStore) ReserveMerchantID(merchantID string) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	for _, id := range f.merchantIDs {
		if id == merchantID {
			return repository.ErrDuplicate
		}
	}
	f.merchantIDs = append(f.merchantIDs, merchantID)
	return nil
}

func (f *fakeSysStore) ExistsMerchantID(merchantID string) (bool, error) {
	for _, id := range f.merchantIDs {
		if id == merchantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSysStore) ExistsReference(reference string) (bool, error) {
	if f.referenceCollisions > 0 {
		f.referenceCollisions--
		return true, nil
	}
	return f.references[reference], nil
}

func (f *fakeSysStore) UpsertByMerchantID(p *models.SysPayment) error {
	f.mirrors[p.MerchantTransactionID] = *p
	return nil
}

func (f *fakeSysStore) FindByMerchantID(merchantID string) (*models.SysPayment, error) {
	if p, ok := f.mirrors[merchantID]; ok {
		return &p, nil
	}
	return nil, nil
}

type fakeLogStore struct {
	entries []models.RequestLog
}

func (f *fakeLogStore) Record(entry *models.RequestLog) {
	f.entries = append(f.entries, *entry)
}

type fakeEnqueuer struct {
	calls int
	err   error
}

func (f *fakeEnqueuer) EnqueuePaymentSync() error {
	f.calls++
	return f.err
}

// fakeGateway scripts the transport layer. Charge responses are consumed
// in order; the last one repeats once the script runs out.
type fakeGateway struct {
	tokenResp     *gateway.TokenResponse
	tokenErr      error
	exchangeCalls int

	chargeResponses []*gateway.ChargeResponse
	chargeErr       error
	chargePayloads  []gateway.ChargePayload
	chargeTokens    []string

	chargeList *gateway.ChargeList
	listErr    error
	listLimit  int

	applications *gateway.ApplicationList
	appsErr      error
}

func (f *fakeGateway) ExchangeToken() (*gateway.TokenResponse, error) {
	f.exchangeCalls++
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	if f.tokenResp == nil {
		return nil, errors.New("no token scripted")
	}
	return f.tokenResp, nil
}

func (f *fakeGateway) CreateCharge(token string, payload *gateway.ChargePayload) (*gateway.ChargeResponse, error) {
	f.chargeTokens = append(f.chargeTokens, token)
	f.chargePayloads = append(f.chargePayloads, *payload)
	if f.chargeErr != nil {
		return nil, f.chargeErr
	}
	if len(f.chargeResponses) == 0 {
		return nil, errors.New("no charge response scripted")
	}
	resp := f.chargeResponses[0]
	if len(f.chargeResponses) > 1 {
		f.chargeResponses = f.chargeResponses[1:]
	}
	return resp, nil
}

func (f *fakeGateway) ListCharges(token string, limit int) (*gateway.ChargeList, error) {
	f.listLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.chargeList == nil {
		return &gateway.ChargeList{}, nil
	}
	return f.chargeList, nil
}

func (f *fakeGateway) ListApplications(token string) (*gateway.ApplicationList, error) {
	if f.appsErr != nil {
		return nil, f.appsErr
	}
	if f.applications == nil {
		return &gateway.ApplicationList{}, nil
	}
	return f.applications, nil
}
