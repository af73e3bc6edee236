package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"todoapi/internal/repository"
)

// CleanupService runs a cron job that drops revoked-token rows whose
// tokens have expired on their own, keeping the denylist bounded.
type CleanupService struct {
	cron   *cron.Cron
	tokens *repository.TokenRepository
}

func NewCleanupService(tokens *repository.TokenRepository, loc *time.Location) *CleanupService {
	return &CleanupService{
		cron:   cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		tokens: tokens,
	}
}

// Schedule registers the purge to run every given interval.
func (s *CleanupService) Schedule(interval time.Duration) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	// Convert to cron spec: every N seconds.
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(spec, s.purge)
}

func (s *CleanupService) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.tokens.PurgeExpired(ctx, time.Now())
	if err != nil {
		log.Printf("token cleanup: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("token cleanup: removed %d expired entries", purged)
	}
}

func (s *CleanupService) Start() {
	s.cron.Start()
}

func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
