package maintenance

import (
	"log"
	"time"

	"campusboard-backend/internal/pinboard/repository"

	"github.com/go-co-op/gocron"
)

// Reaper physically deletes pins that aged past the TTL. Liveness is
// always recomputed on read, so the reaper only bounds table growth;
// running it redundantly is harmless.
type Reaper struct {
	pinRepo   repository.PinRepository
	ttl       time.Duration
	interval  time.Duration
	scheduler *gocron.Scheduler
}

// NewReaper creates a reaper sweeping at the given interval.
func NewReaper(pinRepo repository.PinRepository, ttl, interval time.Duration) *Reaper {
	return &Reaper{
		pinRepo:  pinRepo,
		ttl:      ttl,
		interval: interval,
	}
}

// Start schedules the sweep and runs it in the background.
func (r *Reaper) Start() {
	r.scheduler = gocron.NewScheduler(time.UTC)
	r.scheduler.Every(r.interval).Tag("expired pin sweep").Do(r.Sweep)
	r.scheduler.StartAsync()
	log.Printf("[Reaper] Started expired pin sweep (interval: %s)", r.interval)
}

// Stop halts the scheduler.
func (r *Reaper) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}

// Sweep deletes every pin older than the TTL.
func (r *Reaper) Sweep() {
	deleted, err := r.pinRepo.DeleteExpired(time.Now().Add(-r.ttl))
	if err != nil {
		log.Printf("[Reaper] Failed to delete expired pins: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Reaper] Deleted %d expired pins", deleted)
	}
}
