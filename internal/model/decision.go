package model

// Decision is the outcome of evaluating one quarantined transaction.
type Decision struct {
	Released    bool
	Thresholds  []float64 // per registered defense, in registration order
	Draws       []int     // per registered defense, same order
	WindowSpend float64   // rolling released-dollar sum at evaluation time
}
