package game

// Showdown outcomes from the hero's perspective
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

// Evaluate scores a complete 9-card State from the hero's perspective,
// returning a reward between Loss and Win.
type Evaluate func(State) float64
