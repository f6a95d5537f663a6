package scheduler

import (
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// AvailabilityScheduler flags zero-stock variants as unavailable once a day
// so the storefront never offers a combination that cannot ship.
type AvailabilityScheduler struct {
	cron        *cron.Cron
	variantRepo repository.VariantRepository
}

func NewAvailabilityScheduler(variantRepo repository.VariantRepository) *AvailabilityScheduler {
	return &AvailabilityScheduler{
		cron:        cron.New(),
		variantRepo: variantRepo,
	}
}

// Start registers the nightly sweep (03:00) and runs one sweep immediately
// so a restart never leaves stale availability flags until the next night.
func (s *AvailabilityScheduler) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.sweep); err != nil {
		return err
	}

	go s.sweep()

	s.cron.Start()
	logger.Info("Availability scheduler started", map[string]interface{}{
		"schedule": "0 3 * * *",
	})
	return nil
}

func (s *AvailabilityScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Availability scheduler stopped", nil)
}

func (s *AvailabilityScheduler) sweep() {
	updated, err := s.variantRepo.MarkZeroStockUnavailable()
	if err != nil {
		logger.Error("Availability sweep failed", err, nil)
		return
	}

	if updated > 0 {
		logger.Info("Availability sweep completed", map[string]interface{}{
			"variants_disabled": updated,
		})
	}
}
