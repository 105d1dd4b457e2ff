// Package scheduler runs periodic background jobs for the portal.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fozemdestaque/portal/internal/config"
	"github.com/fozemdestaque/portal/internal/entities"
	"github.com/fozemdestaque/portal/internal/importer"
)

const syncTimeout = 30 * time.Minute

// AdminResolver finds the account that owns synced posts.
type AdminResolver interface {
	GetAdminUser() (*entities.User, error)
}

// FeedSyncScheduler periodically re-imports the legacy WordPress export so
// the portal stays current with posts published on the old site.
type FeedSyncScheduler struct {
	importer *importer.Importer
	users    AdminResolver
	cfg      config.FeedSync

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
}

// NewFeedSyncScheduler creates a new scheduler instance.
func NewFeedSyncScheduler(imp *importer.Importer, users AdminResolver, cfg config.FeedSync) *FeedSyncScheduler {
	return &FeedSyncScheduler{
		importer: imp,
		users:    users,
		cfg:      cfg,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if feed sync is enabled.
func (s *FeedSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Feed sync scheduler: disabled")
		return nil
	}

	if s.cfg.SourceURL == "" {
		log.Printf("Feed sync scheduler: source URL not configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Feed sync scheduler: started with schedule '%s' for %s", s.cfg.Schedule, s.cfg.SourceURL)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sync to finish.
func (s *FeedSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Feed sync scheduler: stopped")
}

// RunNow triggers an immediate sync.
func (s *FeedSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active.
func (s *FeedSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next sync will occur.
func (s *FeedSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync performs one full import from the configured export URL.
func (s *FeedSyncScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Feed sync: skipped (already syncing)")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	admin, err := s.users.GetAdminUser()
	if err != nil {
		log.Printf("Feed sync: no admin account to own posts: %v", err)
		return
	}

	log.Printf("Feed sync: starting import from %s", s.cfg.SourceURL)
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	summary, err := s.importer.RunAll(ctx, importer.RunOptions{
		SourceURL:  s.cfg.SourceURL,
		SkipImages: s.cfg.SkipImages,
		AuthorID:   admin.ID,
	})
	if err != nil {
		log.Printf("Feed sync: failed: %v", err)
		return
	}

	log.Printf("Feed sync: imported %d, skipped %d, failed %d of %d posts in %v",
		summary.Imported, summary.Skipped, summary.Failed, summary.Total,
		time.Since(startTime).Round(time.Millisecond))
}
