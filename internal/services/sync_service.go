package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"appypay-service/internal/gateway"
	"appypay-service/internal/models"
	"appypay-service/internal/repository"
)

// listChargesLimit is large enough to behave as "fetch all".
const listChargesLimit = 1000000

// Placeholder values for remote payments that arrive without a
// reference block.
const defaultReferenceEntity = "00083"

// SyncService reconciles the remote payment listing into the local
// mirror and refreshes the payment-method table from the applications
// listing. It never surfaces errors to callers; reconciliation failures
// are logged only.
type SyncService struct {
	auth    *AuthService
	gw      Gateway
	sys     repository.SysStore
	methods repository.MethodStore

	// Updater, when set, applies declarative post-success rules to
	// foreign tables after a mirrored payment lands on Success.
	Updater *StatusUpdater
}

func NewSyncService(auth *AuthService, gw Gateway, sys repository.SysStore, methods repository.MethodStore) *SyncService {
	return &SyncService{auth: auth, gw: gw, sys: sys, methods: methods}
}

// RefreshAll pulls the full remote payment list and upserts the local
// mirror records. Reconciliation races harmlessly with payment creation;
// both converge on the same upsert target.
func (s *SyncService) RefreshAll() {
	token, err := s.auth.AccessToken()
	if err != nil {
		log.Printf("[apypay] payment sync skipped, no token: %v", err)
		return
	}

	list, err := s.gw.ListCharges(token, listChargesLimit)
	if err != nil {
		log.Printf("[apypay] payment listing failed: %v", err)
		return
	}

	synced := 0
	for i := range list.Payments {
		mirror := buildMirror(&list.Payments[i])
		if mirror.MerchantTransactionID == "" {
			continue
		}

		if err := s.sys.UpsertByMerchantID(mirror); err != nil {
			log.Printf("[apypay] mirror upsert failed for %s: %v", mirror.MerchantTransactionID, err)
			continue
		}
		synced++

		if mirror.Status == models.StatusSuccess && s.Updater != nil {
			s.Updater.ExecuteOnSuccess(mirror)
		}
	}

	log.Printf("[apypay] payment sync completed: %d of %d records", synced, len(list.Payments))
}

// RefreshMethods pulls the applications listing and upserts the local
// payment-method table by application hash.
func (s *SyncService) RefreshMethods() error {
	token, err := s.auth.AccessToken()
	if err != nil {
		return err
	}

	list, err := s.gw.ListApplications(token)
	if err != nil {
		log.Printf("[apypay] application listing failed: %v", err)
		return err
	}

	for _, app := range list.Applications {
		methodType := app.PaymentMethod
		if len(app.ApplicationKeys) > 0 {
			methodType = app.PaymentMethod + "_" + app.ApplicationKeys[0].APIKey
		}

		err := s.methods.UpsertByHash(&models.PaymentMethod{
			Hash:      app.ID,
			Name:      app.Name,
			Method:    app.PaymentMethod,
			Type:      methodType,
			IsActive:  app.IsActive,
			IsDefault: app.IsDefault,
		})
		if err != nil {
			log.Printf("[apypay] method upsert failed for %s: %v", app.ID, err)
		}
	}

	return nil
}

// StartScheduler runs the periodic reconciliation and the hourly token
// expiry sweep.
func (s *SyncService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("Running scheduled payment sync...")
		s.RefreshAll()
	}); err != nil {
		log.Printf("Error scheduling payment sync: %v", err)
		return
	}

	if _, err := c.AddFunc("0 * * * *", func() {
		n, err := s.auth.SweepExpired()
		if err != nil {
			log.Printf("Error in token sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[apypay] invalidated %d expired tokens", n)
		}
	}); err != nil {
		log.Printf("Error scheduling token sweep: %v", err)
		return
	}

	c.Start()
	log.Println("SyncService scheduler started (sync every 10 minutes, token sweep hourly)")
}

// buildMirror maps one remote payment onto the mirror model, filling the
// placeholder reference values for records that lack them.
func buildMirror(p *gateway.RemotePayment) *models.SysPayment {
	now := time.Now()

	mirror := &models.SysPayment{
		ExternalID:            p.ID,
		MerchantTransactionID: p.MerchantTransactionID,
		Type:                  p.Type,
		Operation:             p.Operation,
		Amount:                p.Amount,
		Currency:              p.Currency,
		Status:                p.Status,
		Description:           p.Description,
		PaymentMethod:         p.PaymentMethod,
		Disputes:              p.Disputes,
		ApplicationFeeAmount:  p.ApplicationFeeAmount,
		CreatedDate:           parseGatewayDate(p.CreatedDate, now),
		UpdatedDate:           parseGatewayDate(p.UpdatedDate, now),
		ReferenceEntity:       defaultReferenceEntity,
		ReferenceDueDate:      now.AddDate(0, 0, 2),
	}

	if p.Options != nil {
		if raw, err := json.Marshal(p.Options); err == nil {
			mirror.Options = string(raw)
		}
	}

	if p.Reference != nil {
		mirror.ReferenceNumber = p.Reference.ReferenceNumber
		if p.Reference.Entity != "" {
			mirror.ReferenceEntity = p.Reference.Entity
		}
		if p.Reference.DueDate != "" {
			mirror.ReferenceDueDate = parseGatewayDate(p.Reference.DueDate, mirror.ReferenceDueDate)
		}
	}

	return mirror
}
