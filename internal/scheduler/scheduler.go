package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic conversation export.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	exportFunc func(ctx context.Context) error

	mu      sync.Mutex
	running bool
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) SetExportFunction(f func(ctx context.Context) error) {
	s.exportFunc = f
}

// Start registers the export under the standard five-field cron spec (or a
// descriptor such as "@every 10m") and starts the scheduler. An empty spec or a
// missing export function leaves it stopped.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return nil
	}
	if s.exportFunc == nil {
		log.Println("export function not set, autosave disabled")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		if err := s.exportFunc(s.ctx); err != nil {
			log.Printf("autosave failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid autosave schedule %q: %w", spec, err)
	}

	s.cron.Start()
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	log.Printf("autosave scheduled: %s", spec)
	return nil
}

// Stop waits for a running export to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()
	if wasRunning {
		<-s.cron.Stop().Done()
	}
	s.cancel()
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
