package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// Expiring batches are flagged this many days ahead of their expiry date
const expiryWarningDays = 30

// AlertCronService runs the daily inventory scan that raises low stock
// and expiry alerts
type AlertCronService struct {
	inventoryRepo repositories.InventoryRepository
	cron          *cron.Cron
	spec          string
	log           zerolog.Logger
}

// NewAlertCronService creates the scheduled inventory scanner
func NewAlertCronService(inventoryRepo repositories.InventoryRepository, spec string) *AlertCronService {
	return &AlertCronService{
		inventoryRepo: inventoryRepo,
		cron:          cron.New(),
		spec:          spec,
		log:           logger.Get(),
	}
}

// Start schedules the daily scan
func (s *AlertCronService) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.Scan(ctx); err != nil {
			s.log.Error().Err(err).Msg("inventory alert scan failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("inventory alert scan scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish
func (s *AlertCronService) Stop() {
	<-s.cron.Stop().Done()
}

// Scan checks every active consumable for low stock and every batch for
// approaching or passed expiry. Alerts already open for the same
// condition are not raised again.
func (s *AlertCronService) Scan(ctx context.Context) error {
	start := time.Now()
	raised := 0

	// Low stock
	consumables, err := s.inventoryRepo.ListActiveConsumables(ctx)
	if err != nil {
		return err
	}
	for _, consumable := range consumables {
		total, err := s.inventoryRepo.TotalStock(ctx, consumable.ID)
		if err != nil {
			return err
		}
		if total > consumable.ReorderLevel {
			continue
		}

		open, err := s.inventoryRepo.ExistsOpenAlert(ctx, models.AlertLowStock, consumable.ID, nil)
		if err != nil {
			return err
		}
		if open {
			continue
		}

		alert := &models.InventoryAlert{
			AlertType:    models.AlertLowStock,
			ConsumableID: consumable.ID,
			Message: fmt.Sprintf("%s is low on stock: %d %s remaining (reorder level %d)",
				consumable.Name, total, consumable.Unit, consumable.ReorderLevel),
		}
		if err := s.inventoryRepo.CreateAlert(ctx, alert); err != nil {
			return err
		}
		raised++
	}

	// Expiring and expired batches
	today := time.Now().UTC()
	horizon := today.AddDate(0, 0, expiryWarningDays).Format("2006-01-02")
	todayStr := today.Format("2006-01-02")

	batches, err := s.inventoryRepo.ListBatchesExpiringBefore(ctx, horizon)
	if err != nil {
		return err
	}
	for _, batch := range batches {
		alertType := models.AlertExpiringStock
		if batch.ExpiryDate < todayStr {
			alertType = models.AlertExpiredStock
		}

		stockID := batch.ID
		open, err := s.inventoryRepo.ExistsOpenAlert(ctx, alertType, batch.ConsumableID, &stockID)
		if err != nil {
			return err
		}
		if open {
			continue
		}

		verb := "expires"
		if alertType == models.AlertExpiredStock {
			verb = "expired"
		}
		alert := &models.InventoryAlert{
			AlertType:    alertType,
			ConsumableID: batch.ConsumableID,
			StockID:      &stockID,
			Message: fmt.Sprintf("Batch %s of %s %s on %s with %d units remaining",
				batch.BatchNumber, batch.Consumable.Name, verb, batch.ExpiryDate, batch.QuantityCurrent),
		}
		if err := s.inventoryRepo.CreateAlert(ctx, alert); err != nil {
			return err
		}
		raised++
	}

	s.log.Info().
		Int("alerts_raised", raised).
		Dur("took", time.Since(start)).
		Msg("inventory alert scan completed")

	return nil
}
