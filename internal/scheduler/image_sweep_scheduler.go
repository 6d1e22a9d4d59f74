package scheduler

import (
	"context"
	"time"

	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds one run so a slow bucket listing cannot pile up runs
const sweepTimeout = 10 * time.Minute

// ImageSweepScheduler periodically deletes stored recipe images that no recipe references
type ImageSweepScheduler struct {
	cron         *cron.Cron
	imageService service.ImageService
	schedule     string
	grace        time.Duration
}

func NewImageSweepScheduler(imageService service.ImageService, schedule string, grace time.Duration) *ImageSweepScheduler {
	return &ImageSweepScheduler{
		cron:         cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		imageService: imageService,
		schedule:     schedule,
		grace:        grace,
	}
}

// Start registers the sweep and starts the cron loop
func (s *ImageSweepScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.Run)
	if err != nil {
		logger.Error("Failed to add cron job for image sweep", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Image sweep scheduler started", map[string]interface{}{
		"schedule": s.schedule,
		"grace":    s.grace.String(),
	})
	return nil
}

// Run performs one sweep
func (s *ImageSweepScheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	logger.Info("Starting scheduled image sweep")
	removed, err := s.imageService.SweepOrphans(ctx, s.grace)
	if err != nil {
		logger.Error("Image sweep failed", err)
		return
	}
	logger.Info("Image sweep finished", map[string]interface{}{
		"removed": removed,
	})
}

// Stop waits for a running sweep to finish
func (s *ImageSweepScheduler) Stop() {
	logger.Info("Stopping image sweep scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Image sweep scheduler stopped")
}
