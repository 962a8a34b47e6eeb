package searcher

import (
	"errors"
	"fmt"
	"time"

	"equity/experiments/metrics"
	"equity/game"
	"equity/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

var ErrEmptySearch = errors.New("search needs at least one episode")

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	episodes   int
	width      int
	seed       uint64
	seeded     bool
	evaluate   game.Evaluate
	metrics    metrics.Collector
	roots      []*tree // Trees of the last estimate, one per goroutine
}

// WithEpisodes sets the simulation budget. Budgets below one make Estimate fail with ErrEmptySearch.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		m.episodes = episodes
	}
}

// WithWidth sets the children per expansion, capped at MaxWidth. Non-positive widths keep the default.
func WithWidth(width int) Option {
	return func(m *MCTS) {
		if width > 0 {
			m.width = min(width, MaxWidth)
		}
	}
}

// WithSeed makes estimates reproducible. Goroutine i draws from seed+i.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		episodes:   meta.EPISODES,
		width:      meta.WIDTH,
		evaluate:   game.Showdown,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Estimate runs the search from the hero's hole cards and returns the root's win rate.
func (m *MCTS) Estimate(hole game.State) (float64, metrics.SearchMetric, error) {
	if len(hole) != game.HoleSize {
		return 0, metrics.SearchMetric{}, fmt.Errorf("need %d hole cards, got %d", game.HoleSize, len(hole))
	}
	if hole[0] == hole[1] {
		return 0, metrics.SearchMetric{}, fmt.Errorf("%w: %s", game.ErrDuplicateCard, hole[0])
	}
	if m.episodes <= 0 {
		return 0, metrics.SearchMetric{}, ErrEmptySearch
	}

	seed := m.seed
	if !m.seeded {
		seed = uint64(time.Now().UnixNano())
	}

	// Goroutines beyond the budget would build empty trees
	trees := min(m.goroutines, m.episodes)

	log.Debug().Msgf("estimating %s %s with %d episodes on %d goroutines (seed %d)", hole[0], hole[1], m.episodes, trees, seed)

	m.metrics.Start(trees, m.width, seed)
	m.roots = make([]*tree, 0, trees)

	var g errgroup.Group
	for i := 0; i < trees; i++ {
		budget := m.episodes / trees
		if i < m.episodes%trees {
			budget++
		}

		w := &worker{
			tree:     newTree(hole),
			rng:      rand.New(rand.NewSource(seed + uint64(i))),
			width:    m.width,
			evaluate: m.evaluate,
			metrics:  m.metrics,
		}
		m.roots = append(m.roots, w.tree)
		g.Go(func() error {
			return w.run(budget)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	metric := m.metrics.Complete()

	rewards, visits := 0.0, 0
	for _, t := range m.roots {
		root := t.root()
		rewards += root.rewards
		visits += root.visits
	}
	if visits == 0 {
		return 0, metric, ErrEmptySearch
	}

	equity := rewards / float64(visits)
	log.Debug().Msgf("estimated %s %s at %.4f after %d visits", hole[0], hole[1], equity, visits)
	return equity, metric, nil
}

// worker owns one tree and the random source that grows it.
type worker struct {
	tree     *tree
	rng      *rand.Rand
	width    int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func (w *worker) run(episodes int) error {
	for i := 0; i < episodes; i++ {
		if err := w.simulate(); err != nil {
			return err
		}
		w.metrics.AddEpisode()
	}
	return nil
}

// simulate runs one selection, expansion, rollout and backup cycle.
func (w *worker) simulate() error {
	t := w.tree

	id := t.selects()
	if len(t.nodes[id].state) < game.RiverSize {
		added, err := t.expand(id, w.rng, w.width)
		if err != nil {
			return err
		}
		if added > 0 {
			w.metrics.AddExpansion(added)
		}
	}
	if children := t.nodes[id].children; len(children) > 0 {
		id = children[w.rng.Intn(len(children))]
	}

	full, err := w.rollout(t.nodes[id].state)
	if err != nil {
		return err
	}
	t.backup(t.path(id), w.evaluate(full))
	return nil
}

// rollout completes the state to a full board with random cards. The completion is not stored in the tree.
func (w *worker) rollout(state game.State) (game.State, error) {
	missing := game.RiverSize - len(state)
	if missing <= 0 {
		return state, nil
	}
	cards, err := game.Sample(w.rng, game.Remaining(state.Known()), missing)
	if err != nil {
		return nil, err
	}
	w.metrics.AddRollout()
	return state.Extend(cards...), nil
}
