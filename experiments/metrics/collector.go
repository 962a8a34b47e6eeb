package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Width      int
	Seed       uint64
	Duration   time.Duration
	Episodes   int
	Expansions int // Nodes added to the trees
	Rollouts   int // Episodes that completed the board with random cards
	Nodes      int
}

// Record is one estimate of a hand, as stored by the Writer.
type Record struct {
	ID     int
	Hand   string
	Equity float64
	SearchMetric
}

type Collector interface {
	Start(goroutines, width int, seed uint64)
	AddEpisode()
	AddExpansion(children int)
	AddRollout()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	width      int
	seed       uint64
	startTime  time.Time
	episodes   atomic.Int32
	expansions atomic.Int32
	rollouts   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, width int, seed uint64) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.width = width
	m.seed = seed
	m.episodes.Store(0)
	m.expansions.Store(0)
	m.rollouts.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddExpansion(children int) {
	m.expansions.Add(int32(children))
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Width:      m.width,
		Seed:       m.seed,
		Duration:   time.Since(m.startTime),
		Episodes:   int(m.episodes.Load()),
		Expansions: int(m.expansions.Load()),
		Rollouts:   int(m.rollouts.Load()),
		Nodes:      int(m.expansions.Load()) + m.goroutines, // one root per tree
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, width int, seed uint64) {}
func (m *dummyCollector) AddEpisode()                              {}
func (m *dummyCollector) AddExpansion(children int)                {}
func (m *dummyCollector) AddRollout()                              {}
func (m *dummyCollector) Complete() SearchMetric                   { return SearchMetric{} }
