package services

import (
	"log"
	"strconv"
	"sync"
	"time"

	"appypay-service/internal/config"
	"appypay-service/internal/gateway"
	"appypay-service/internal/repository"
)

// Gateway is the transport collaborator for the AppyPay API.
type Gateway interface {
	ExchangeToken() (*gateway.TokenResponse, error)
	CreateCharge(token string, payload *gateway.ChargePayload) (*gateway.ChargeResponse, error)
	ListCharges(token string, limit int) (*gateway.ChargeList, error)
	ListApplications(token string) (*gateway.ApplicationList, error)
}

// AuthService owns the token lifecycle: a process-lifetime in-memory
// cache backed by the apy_tokens table, refreshed through the OAuth2
// client-credentials exchange when neither holds a usable token.
type AuthService struct {
	cfg    *config.Config
	tokens repository.TokenStore
	gw     Gateway

	mu    sync.Mutex
	token string
}

func NewAuthService(cfg *config.Config, tokens repository.TokenStore, gw Gateway) *AuthService {
	return &AuthService{cfg: cfg, tokens: tokens, gw: gw}
}

// AccessToken returns the cached token, the stored active token, or a
// freshly exchanged one, in that order. Two concurrent callers with no
// active token may both exchange; last writer wins, which is harmless
// since tokens are interchangeable.
func (s *AuthService) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}

	// Housekeeping: expired rows lose the active flag before lookup.
	if _, err := s.tokens.InvalidateExpired(time.Now().Unix()); err != nil {
		log.Printf("[apypay] token expiry sweep failed: %v", err)
	}

	active, err := s.tokens.FindActive()
	if err != nil {
		return "", &AuthError{Err: err}
	}
	if active != nil {
		s.token = active.Token
		return s.token, nil
	}

	resp, err := s.gw.ExchangeToken()
	if err != nil {
		log.Printf("[apypay] token exchange failed: %v", err)
		return "", &AuthError{Err: err}
	}

	expiresIn, _ := strconv.ParseInt(resp.ExpiresIn, 10, 64)
	expiresOn, err := strconv.ParseInt(resp.ExpiresOn, 10, 64)
	if err != nil || expiresOn == 0 {
		expiresOn = time.Now().Unix() + expiresIn
	}

	if err := s.tokens.UpsertActive(resp.AccessToken, expiresOn, expiresIn); err != nil {
		// The token is still usable for this process; only the shared
		// cache missed out.
		log.Printf("[apypay] failed to store token: %v", err)
	}

	log.Println("[apypay] new access token generated")
	s.token = resp.AccessToken
	return s.token, nil
}

// Invalidate drops the in-process cache, forcing the next AccessToken
// call back through the store.
func (s *AuthService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// SweepExpired flips istoken = false on expired rows. This is the
// housekeeping step the administrative token-check command calls.
func (s *AuthService) SweepExpired() (int64, error) {
	return s.tokens.InvalidateExpired(time.Now().Unix())
}
