// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines (independent trees) to use.
const GO_ROUTINES = 1

// EPISODES defines the default number of simulations for MCTS.
const EPISODES = 1000

// WIDTH defines the number of children generated per expansion.
const WIDTH = 10

// LOG_LEVEL defines the default zerolog level.
const LOG_LEVEL = "warn"

// METRICS_ROOT defines where experiment records are written.
const METRICS_ROOT = "experiments"
