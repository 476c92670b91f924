package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron       *cron.Cron
	sitemap    *SitemapService
	logger     *logrus.Logger
	jobTimeout time.Duration
}

// NewCronService creates a new CronService
func NewCronService(sitemap *SitemapService, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:       cron.New(cron.WithSeconds()),
		sitemap:    sitemap,
		logger:     logger,
		jobTimeout: time.Minute,
	}
}

// Start schedules the sitemap rebuild and starts the scheduler.
// Cron format: second minute hour day month weekday
func (s *CronService) Start(sitemapSpec string) error {
	if _, err := s.cron.AddFunc(sitemapSpec, s.rebuildSitemapJob); err != nil {
		return fmt.Errorf("failed to schedule sitemap job: %w", err)
	}
	s.logger.WithField("schedule", sitemapSpec).Info("Scheduled: Rebuild sitemap")

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) rebuildSitemapJob() {
	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	if err := s.sitemap.Rebuild(ctx); err != nil {
		s.logger.WithError(err).Error("[CRON] Sitemap rebuild failed")
		return
	}
	s.logger.WithField("duration", time.Since(startTime).String()).Info("[CRON] Sitemap rebuilt")
}

// RunSitemapNow runs the sitemap job immediately
func (s *CronService) RunSitemapNow() {
	s.rebuildSitemapJob()
}

// JobStatus returns the status of scheduled jobs
func (s *CronService) JobStatus() map[string]interface{} {
	entries := s.cron.Entries()

	jobs := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, map[string]interface{}{
			"id":       entry.ID,
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		})
	}

	return map[string]interface{}{
		"running":   len(entries) > 0,
		"job_count": len(entries),
		"jobs":      jobs,
	}
}
