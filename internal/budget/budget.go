package budget

import (
	"errors"
	"fmt"
	"log"
)

// ErrAllocationOverflow is returned when registering a defense would push
// the total allocated fraction above 1.
var ErrAllocationOverflow = errors.New("budget allocation overflow")

// Budget is the aggregate rolling-window spending cap, split across the
// defenses registered with it. TotalMoney bounds the released-dollar sum
// over any trailing WindowDays-day window.
type Budget struct {
	TotalMoney float64
	WindowDays int

	tuning   Tuning
	defenses []*Defense
}

// New creates a budget with no defenses registered and default tuning.
func New(totalMoney float64, windowDays int) *Budget {
	return &Budget{
		TotalMoney: totalMoney,
		WindowDays: windowDays,
		tuning:     DefaultTuning,
	}
}

// SetTuning overrides the rate correction constants. Call before
// registering defenses; registered defenses keep the tuning they were
// created with.
func (b *Budget) SetTuning(t Tuning) {
	b.tuning = t
}

// AddDefense registers a defense holding the given fraction of the total
// money. The registration is rejected outright with ErrAllocationOverflow
// when it would take the allocated fraction above 1.
func (b *Budget) AddDefense(name string, allocation float64) error {
	allocated, _ := b.Allocation()
	if allocation+allocated > 1 {
		return fmt.Errorf("%w: defense %s wants %.2f but only %.2f is free",
			ErrAllocationOverflow, name, allocation, 1-allocated)
	}
	b.defenses = append(b.defenses, &Defense{
		Name:           name,
		AllocatedMoney: allocation * b.TotalMoney,
		WindowDays:     b.WindowDays,
		tuning:         b.tuning,
	})
	return nil
}

// RemoveDefense unregisters the named defense. Removing an unknown name is
// a logged no-op; removal never re-validates the allocation invariant since
// it only frees capacity.
func (b *Budget) RemoveDefense(name string) {
	for i, d := range b.defenses {
		if d.Name == name {
			b.defenses = append(b.defenses[:i], b.defenses[i+1:]...)
			return
		}
	}
	log.Printf("[WARN] defense %s not registered, nothing removed", name)
}

// Allocation returns the fraction of the total money claimed by registered
// defenses and the fraction still free.
func (b *Budget) Allocation() (allocated, free float64) {
	sum := 0.0
	for _, d := range b.defenses {
		sum += d.AllocatedMoney
	}
	allocated = sum / b.TotalMoney
	return allocated, 1 - allocated
}

// Defenses returns the registered defenses in registration order.
func (b *Budget) Defenses() []*Defense {
	return b.defenses
}
