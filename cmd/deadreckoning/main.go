package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"DeadReckoning/internal/config"
	"DeadReckoning/internal/recorder"
	"DeadReckoning/internal/reporter"
	"DeadReckoning/internal/scheduler"
	"DeadReckoning/internal/simulator"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DeadReckoning starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// One-shot mode: run a single simulation and exit.
	if cfg.Schedule.Cron == "" {
		sim, err := simulator.FromConfig(cfg, rec)
		if err != nil {
			log.Fatalf("[FATAL] build simulator: %v", err)
		}
		sum, err := sim.Run()
		if err != nil {
			log.Fatalf("[FATAL] simulation run: %v", err)
		}
		log.Printf("[INFO] %s", reporter.FormatSummary(sum, cfg.Budget.WindowDays))
		return
	}

	// Daemon mode: re-run the simulation on the configured schedule.
	sched := scheduler.New(cfg, rec)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing simulation now")
		go sched.RunNow()
	}

	log.Println("[INFO] DeadReckoning is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] DeadReckoning stopped")
}
