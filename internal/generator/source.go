package generator

import "DeadReckoning/internal/model"

// Source produces quarantined transactions for the simulation to evaluate.
type Source interface {
	Next(day int) *model.Transaction
	Name() string
}

// ScriptedSource replays a fixed set of transactions, for tests and dry
// runs. Amounts and flags come from the script; the day is reassigned to
// the requested one.
type ScriptedSource struct {
	Script []*model.Transaction
	pos    int
}

func (s *ScriptedSource) Name() string { return "scripted" }

// Next returns the next scripted transaction stamped with the given day.
// Wraps around when the script is exhausted. The script must not be empty.
func (s *ScriptedSource) Next(day int) *model.Transaction {
	if len(s.Script) == 0 {
		panic("generator: scripted source has an empty script")
	}
	src := s.Script[s.pos%len(s.Script)]
	s.pos++
	flags := make(map[string]bool, len(src.Flags))
	for k, v := range src.Flags {
		flags[k] = v
	}
	return model.NewTransaction(day, src.Amount, flags)
}
