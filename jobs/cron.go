package jobs

import (
	"context"
	"time"

	"restaurante360/services"
	"restaurante360/services/logger"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 5 * time.Minute

const (
	// OverdueSweepSpec runs at the top of every hour.
	OverdueSweepSpec = "0 * * * *"
	// CacheFlushSpec runs every day at 03:00 in the business timezone.
	CacheFlushSpec = "0 3 * * *"
)

// InitCronJobs registers the periodic jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron, svc *services.Services, cache *services.Cache, log logger.Logger) error {
	if _, err := c.AddFunc(OverdueSweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := svc.Dashboard.OverdueSweep(ctx); err != nil {
			log.Error("overdue sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}

	if _, err := c.AddFunc(CacheFlushSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		n, err := cache.Flush(ctx)
		if err != nil {
			log.Error("cache flush failed: %v", err)
			return
		}
		log.Info("cache flush removed %d keys", n)
	}); err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}
