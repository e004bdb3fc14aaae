package uploads

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically deletes temp uploads older than MaxAge. Handlers
// remove their own files after the storage hand-off; this catches anything
// left behind by crashes or abandoned requests.
type Sweeper struct {
	manager *Manager
	maxAge  time.Duration
	cron    *cron.Cron
}

func NewSweeper(m *Manager, maxAge time.Duration) *Sweeper {
	return &Sweeper{manager: m, maxAge: maxAge}
}

func (s *Sweeper) Start(every time.Duration) error {
	c := cron.New()

	_, err := c.AddFunc(fmt.Sprintf("@every %s", every), func() {
		s.sweep()
	})
	if err != nil {
		return fmt.Errorf("schedule upload sweep: %w", err)
	}

	log.Printf("Upload sweeper started (every %s, max age %s)", every, s.maxAge)
	c.Start()
	s.cron = c
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.maxAge)
	removed := 0

	entries, err := os.ReadDir(s.manager.Dir)
	if err != nil {
		log.Printf("Upload sweep failed: %v", err)
		return
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.manager.Dir, e.Name())); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		log.Printf("Upload sweep removed %d stale file(s)", removed)
	}
}
