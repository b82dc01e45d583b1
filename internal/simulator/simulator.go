package simulator

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"DeadReckoning/internal/budget"
	"DeadReckoning/internal/config"
	"DeadReckoning/internal/engine"
	"DeadReckoning/internal/generator"
	"DeadReckoning/internal/ledger"
	"DeadReckoning/internal/model"
	"DeadReckoning/internal/recorder"
	"DeadReckoning/internal/reporter"
)

// Simulator drives the day-by-day evaluation loop: it seeds a window of
// history, then feeds each day's transactions through the release engine,
// updating the ledgers and recording output. Strictly sequential; the
// verdict for each transaction depends on the ledgers built by all the
// transactions before it.
type Simulator struct {
	cfg    *config.Config
	budget *budget.Budget
	eval   *engine.Evaluator
	source generator.Source
	rec    recorder.Recorder
}

// New wires a simulator from already-built parts.
func New(cfg *config.Config, b *budget.Budget, eval *engine.Evaluator, source generator.Source, rec recorder.Recorder) *Simulator {
	return &Simulator{cfg: cfg, budget: b, eval: eval, source: source, rec: rec}
}

// FromConfig builds the budget, engine, and random source described by the
// config. Each call gets fresh state, so a daemon can run it repeatedly.
func FromConfig(cfg *config.Config, rec recorder.Recorder) (*Simulator, error) {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	b := budget.New(cfg.Budget.TotalMoney, cfg.Budget.WindowDays)
	b.SetTuning(budget.Tuning{
		Resolution: cfg.Tuning.RateResolution,
		Bias:       cfg.Tuning.RateBias,
	})
	rates := make([]generator.FlagRate, 0, len(cfg.Defenses))
	for _, d := range cfg.Defenses {
		if err := b.AddDefense(d.Name, d.Allocation); err != nil {
			return nil, fmt.Errorf("register defense %s: %w", d.Name, err)
		}
		rates = append(rates, generator.FlagRate{Name: d.Name, Rate: d.FlagRate})
	}
	allocated, free := b.Allocation()
	log.Printf("[INFO] %.0f%% of the budget is allocated, %.0f%% is not", allocated*100, free*100)

	eval := engine.New(b, cfg.Budget.MaxReleasableAmount, rng)
	source := generator.NewRandomSource(rng, rates,
		cfg.Amount.Min, cfg.Amount.Mode, cfg.Amount.Max)

	return New(cfg, b, eval, source, rec), nil
}

// Run executes one full simulation and returns its summary.
func (s *Simulator) Run() (*model.RunSummary, error) {
	runID := uuid.NewString()
	windowDays := s.cfg.Budget.WindowDays
	perDay := s.cfg.Simulation.TransactionsPerDay

	hist := ledger.New(s.cfg.Budget.MaxReleasableAmount)
	released := ledger.New(s.cfg.Budget.MaxReleasableAmount)

	log.Printf("[INFO] run %s: building %d days of history from source %q", runID, windowDays, s.source.Name())
	for day := 1; day <= windowDays; day++ {
		for i := 0; i < perDay; i++ {
			hist.Append(s.source.Next(day))
		}
	}

	for day := windowDays + 1; day <= s.cfg.Simulation.Days; day++ {
		rep := s.dayReport(day, hist, released)
		log.Printf("[INFO] %s", reporter.FormatDayProgress(rep, windowDays))
		if err := s.rec.RecordDaily(&recorder.DayStat{
			RunID:         runID,
			Day:           day,
			WindowSpend:   rep.WindowSpend,
			ReleasedCount: released.Len(),
			ReleasedTotal: released.TotalAmount(),
		}); err != nil {
			log.Printf("[ERROR] record daily: %v", err)
		}

		for i := 0; i < perDay; i++ {
			tx := s.source.Next(day)
			dec := s.eval.Evaluate(tx, day, hist, released)
			if dec.Released {
				released.Append(tx)
				log.Printf("[INFO] %s", reporter.FormatRelease(tx, dec))
				if err := s.rec.RecordRelease(&recorder.ReleaseEvent{
					RunID:       runID,
					Day:         day,
					TxID:        tx.ID,
					Amount:      tx.Amount,
					Flags:       flagNames(tx),
					WindowSpend: dec.WindowSpend,
				}); err != nil {
					log.Printf("[ERROR] record release: %v", err)
				}
			}
			hist.Append(tx)
		}
	}

	sum := s.summarize(runID, hist, released)
	if err := s.rec.RecordRun(sum); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return sum, nil
}

// dayReport snapshots the budget state at the start of a day.
func (s *Simulator) dayReport(day int, hist, released *ledger.Ledger) *model.DayReport {
	from := day - s.cfg.Budget.WindowDays
	if from < 1 {
		from = 1
	}
	rep := &model.DayReport{
		Day:         day,
		WindowSpend: released.SumFrom(from),
	}
	for _, d := range s.budget.Defenses() {
		rep.Defenses = append(rep.Defenses, model.DefenseDayStat{
			Name:            d.Name,
			ReleasedTotal:   released.DefenseTotal(d.Name),
			ReleasedCount:   released.DefenseCount(d.Name),
			HistoricalCount: hist.DefenseCount(d.Name),
		})
	}
	return rep
}

// summarize computes the per-day liability series and the post-warm-up
// average. Days inside the first 2x window are startup transients and are
// excluded from the average.
func (s *Simulator) summarize(runID string, hist, released *ledger.Ledger) *model.RunSummary {
	windowDays := s.cfg.Budget.WindowDays
	warmup := 2 * windowDays

	sum := &model.RunSummary{
		RunID:           runID,
		ReleasedCount:   released.Len(),
		ReleasedTotal:   released.TotalAmount(),
		HistoricalCount: hist.Len(),
		HistoricalTotal: hist.TotalAmount(),
		WarmupDays:      warmup,
	}

	total, counted := 0.0, 0
	for day := 1; day <= s.cfg.Simulation.Days; day++ {
		from := day - windowDays
		if from < 1 {
			from = 1
		}
		outstanding := released.WindowSum(from, day)
		sum.Liabilities = append(sum.Liabilities, model.DayLiability{Day: day, Outstanding: outstanding})
		if day > warmup {
			total += outstanding
			counted++
		}
	}
	if counted > 0 {
		sum.AvgOutstanding = total / float64(counted)
	} else {
		log.Printf("[WARN] run shorter than warm-up period (%d days), no liability average", warmup)
	}
	return sum
}

func flagNames(tx *model.Transaction) string {
	var names []string
	for name, set := range tx.Flags {
		if set {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
