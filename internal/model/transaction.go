package model

import "github.com/google/uuid"

// Transaction is a single blocked transaction under quarantine.
// It is created once by a source and never mutated afterwards.
type Transaction struct {
	ID     string
	Day    int
	Amount float64
	Flags  map[string]bool
}

// NewTransaction builds a transaction for the given day. At least one flag
// must be set; a transaction that nothing blocked is not a valid quarantine
// entry.
func NewTransaction(day int, amount float64, flags map[string]bool) *Transaction {
	return &Transaction{
		ID:     uuid.NewString(),
		Day:    day,
		Amount: amount,
		Flags:  flags,
	}
}

// Flagged reports whether the named defense blocked this transaction.
func (t *Transaction) Flagged(name string) bool {
	return t.Flags[name]
}

// FlagCount returns the number of defenses that blocked this transaction.
func (t *Transaction) FlagCount() int {
	n := 0
	for _, v := range t.Flags {
		if v {
			n++
		}
	}
	return n
}
