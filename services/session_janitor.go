package services

import (
	"context"
	"log"
	"time"

	"github.com/irisedu/iris/repository"
)

// SessionJanitor sweeps old session rows in the background. Access
// tokens expire on their own, so revoked and stale rows only serve the
// audit trail; past the retention window they are dead weight.
//
//	janitor := services.NewSessionJanitor(sessionRepo, 30*24*time.Hour, time.Hour)
//	defer janitor.Close()
type SessionJanitor struct {
	sessionRepo repository.SessionRepository
	retention   time.Duration
	stop        chan struct{}
}

// NewSessionJanitor starts the sweep loop. retention is how long rows
// are kept; interval is how often the sweep runs.
func NewSessionJanitor(sessionRepo repository.SessionRepository, retention, interval time.Duration) *SessionJanitor {
	j := &SessionJanitor{
		sessionRepo: sessionRepo,
		retention:   retention,
		stop:        make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stop:
				return
			}
		}
	}()

	return j
}

// Close stops the sweep loop.
func (j *SessionJanitor) Close() {
	close(j.stop)
}

func (j *SessionJanitor) sweep() {
	cutoff := time.Now().Add(-j.retention)
	if err := j.sessionRepo.DeleteOlderThan(context.Background(), cutoff); err != nil {
		log.Printf("[janitor] session sweep failed: %v", err)
	}
}
