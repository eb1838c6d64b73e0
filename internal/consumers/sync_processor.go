package consumers

import (
	"log"

	"appypay-service/internal/services"
)

// SyncProcessor executes the queued background jobs: gateway
// reconciliation, method refresh and token housekeeping.
type SyncProcessor struct {
	Sync *services.SyncService
	Auth *services.AuthService
}

func NewSyncProcessor(sync *services.SyncService, auth *services.AuthService) *SyncProcessor {
	return &SyncProcessor{
		Sync: sync,
		Auth: auth,
	}
}

func (p *SyncProcessor) ProcessPaymentSync() {
	log.Println("Processing payment sync task")
	p.Sync.RefreshAll()
}

func (p *SyncProcessor) ProcessMethodRefresh() error {
	log.Println("Processing method refresh task")
	return p.Sync.RefreshMethods()
}

func (p *SyncProcessor) ProcessTokenSweep() error {
	n, err := p.Auth.SweepExpired()
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("Token sweep invalidated %d expired tokens", n)
	}
	return nil
}
