package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"DeadReckoning/internal/config"
	"DeadReckoning/internal/recorder"
	"DeadReckoning/internal/reporter"
	"DeadReckoning/internal/simulator"
)

// Scheduler re-runs the simulation on a cron schedule in daemon mode. Each
// tick builds a fresh simulator, so runs never share ledgers or budget
// state.
type Scheduler struct {
	Cron *cron.Cron
	cfg  *config.Config
	rec  recorder.Recorder
}

// New creates a Scheduler.
func New(cfg *config.Config, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		cfg:  cfg,
		rec:  rec,
	}
}

// Register registers the simulation run under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runTask); err != nil {
		return fmt.Errorf("register simulation task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the simulation immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runTask()
}

func (s *Scheduler) runTask() {
	log.Println("[INFO] running scheduled simulation")
	sim, err := simulator.FromConfig(s.cfg, s.rec)
	if err != nil {
		log.Printf("[ERROR] build simulator: %v", err)
		return
	}
	sum, err := sim.Run()
	if err != nil {
		log.Printf("[ERROR] simulation run: %v", err)
		return
	}
	log.Printf("[INFO] %s", reporter.FormatSummary(sum, s.cfg.Budget.WindowDays))
}
