package searcher

import (
	"sync"
	"testing"

	"equity/game"
	"equity/meta"

	"github.com/stretchr/testify/require"
)

// recorder wraps the showdown and keeps every state it was asked to evaluate.
type recorder struct {
	sync.Mutex
	states []game.State
}

func (r *recorder) evaluate(s game.State) float64 {
	r.Lock()
	defer r.Unlock()
	r.states = append(r.states, s)
	return game.Showdown(s)
}

func TestEstimate(t *testing.T) {
	t.Run("failing with zero episodes", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(0), WithSeed(1))

		_, _, err := m.Estimate(mustHole(t, "As", "Ah"))

		require.ErrorIs(t, err, ErrEmptySearch, "Zero budget should not produce a result")
	})

	t.Run("failing with a negative budget", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(-5))

		_, _, err := m.Estimate(mustHole(t, "As", "Ah"))

		require.ErrorIs(t, err, ErrEmptySearch)
	})

	t.Run("running a single cycle", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(1), WithSeed(7))

		equity, _, err := m.Estimate(mustHole(t, "As", "Kh"))

		require.NoError(t, err)
		require.Len(t, m.roots, 1)
		root := m.roots[0].root()
		require.Equal(t, 1, root.visits, "Root should be visited exactly once")
		require.Contains(t, []float64{game.Loss, game.Draw, game.Win}, root.rewards)
		require.Equal(t, root.rewards, equity)
		require.Len(t, root.children, 10, "First cycle should expand the root")

		visited := 0
		for _, c := range root.children {
			visited += m.roots[0].nodes[c].visits
		}
		require.Equal(t, 1, visited, "Exactly one rollout child should be on the path")
	})

	t.Run("deterministic under a fixed seed", func(t *testing.T) {
		hole := mustHole(t, "Qs", "Jd")

		first, _, err := NewMCTS(1, WithEpisodes(300), WithSeed(42)).Estimate(hole)
		require.NoError(t, err)
		second, _, err := NewMCTS(1, WithEpisodes(300), WithSeed(42)).Estimate(hole)
		require.NoError(t, err)

		require.Equal(t, first, second, "Same seed and inputs should give the same estimate")
	})

	t.Run("deterministic across goroutines under a fixed seed", func(t *testing.T) {
		hole := mustHole(t, "7c", "7d")

		first, _, err := NewMCTS(4, WithEpisodes(301), WithSeed(9)).Estimate(hole)
		require.NoError(t, err)
		second, _, err := NewMCTS(4, WithEpisodes(301), WithSeed(9)).Estimate(hole)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})

	t.Run("estimate stays within bounds", func(t *testing.T) {
		for i, hole := range [][2]string{{"As", "Ah"}, {"2c", "7d"}, {"Ts", "9s"}} {
			equity, _, err := NewMCTS(2, WithEpisodes(200), WithSeed(uint64(i))).Estimate(mustHole(t, hole[0], hole[1]))

			require.NoError(t, err)
			require.GreaterOrEqual(t, equity, 0.0)
			require.LessOrEqual(t, equity, 1.0)
		}
	})

	t.Run("pocket pair never loses the coarse showdown", func(t *testing.T) {
		equity, _, err := NewMCTS(1, WithEpisodes(200), WithSeed(3)).Estimate(mustHole(t, "As", "Ah"))

		require.NoError(t, err)
		require.GreaterOrEqual(t, equity, 0.5, "A made pair can only win or draw")
	})

	t.Run("evaluating only complete states without duplicates", func(t *testing.T) {
		rec := &recorder{}
		hole := mustHole(t, "As", "Kh")
		m := NewMCTS(1, WithEpisodes(500), WithSeed(11), WithEvaluationFn(rec.evaluate))

		_, _, err := m.Estimate(hole)

		require.NoError(t, err)
		require.Len(t, rec.states, 500, "Every episode should evaluate exactly one state")
		for _, s := range rec.states {
			require.Len(t, s, game.RiverSize)
			require.Equal(t, game.RiverSize, s.Known().Len(), "All 9 cards should be distinct")
			require.Equal(t, hole, game.State(s.Hero()), "Hero seed should stay in place")
		}
	})

	t.Run("splitting the budget across goroutines", func(t *testing.T) {
		m := NewMCTS(3, WithEpisodes(10), WithSeed(5), WithMetrics())

		_, metric, err := m.Estimate(mustHole(t, "As", "Kh"))

		require.NoError(t, err)
		require.Len(t, m.roots, 3)
		visits := []int{}
		for _, tr := range m.roots {
			visits = append(visits, tr.root().visits)
		}
		require.Equal(t, []int{4, 3, 3}, visits, "Remainder should go to the first goroutines")
		require.Equal(t, 10, metric.Episodes)
		require.Equal(t, 3, metric.Goroutines)
		require.Equal(t, uint64(5), metric.Seed)
	})

	t.Run("skipping idle goroutines", func(t *testing.T) {
		m := NewMCTS(8, WithEpisodes(2), WithSeed(5), WithMetrics())

		_, metric, err := m.Estimate(mustHole(t, "As", "Kh"))

		require.NoError(t, err)
		require.Len(t, m.roots, 2, "Goroutines without budget should not build trees")
		require.Equal(t, 2, metric.Goroutines, "Only trees that ran should be reported")
		nodes := 0
		for _, tr := range m.roots {
			nodes += len(tr.nodes)
		}
		require.Equal(t, nodes, metric.Nodes)
	})

	t.Run("capping the width", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(1), WithSeed(5), WithWidth(MaxWidth+36), WithMetrics())

		_, metric, err := m.Estimate(mustHole(t, "As", "Kh"))

		require.NoError(t, err)
		require.Len(t, m.roots[0].root().children, MaxWidth)
		require.Equal(t, MaxWidth, metric.Width)
	})

	t.Run("ignoring a non-positive width", func(t *testing.T) {
		for _, width := range []int{0, -3} {
			m := NewMCTS(1, WithEpisodes(1), WithSeed(5), WithWidth(width))

			_, _, err := m.Estimate(mustHole(t, "As", "Kh"))

			require.NoError(t, err)
			require.Len(t, m.roots[0].root().children, meta.WIDTH, "Default width should be kept")
		}
	})

	t.Run("recording expansions", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(50), WithSeed(5), WithMetrics(), WithWidth(4))

		_, metric, err := m.Estimate(mustHole(t, "As", "Kh"))

		require.NoError(t, err)
		require.Equal(t, len(m.roots[0].nodes)-1, metric.Expansions, "Every node but the root comes from an expansion")
		require.Equal(t, 4, metric.Width)
		require.Positive(t, metric.Rollouts)
		require.LessOrEqual(t, metric.Rollouts, 50, "Episodes ending on a river node need no rollout")
	})

	t.Run("rejecting a malformed seed", func(t *testing.T) {
		_, _, err := NewMCTS(1).Estimate(game.State{0, 0})
		require.ErrorIs(t, err, game.ErrDuplicateCard)

		_, _, err = NewMCTS(1).Estimate(game.State{0})
		require.Error(t, err)
	})
}

func TestSimulateDepth(t *testing.T) {
	t.Run("tree grows one street at a time", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(2000), WithSeed(21), WithWidth(2))

		_, _, err := m.Estimate(mustHole(t, "As", "Kh"))
		require.NoError(t, err)

		tr := m.roots[0]
		for _, n := range tr.nodes {
			switch len(n.children) {
			case 0:
			case 2:
				for _, c := range n.children {
					child := tr.nodes[c]
					require.Equal(t, len(n.state)+draws(n.state.Street()), len(child.state))
				}
			default:
				t.Fatalf("node of length %d has %d children", len(n.state), len(n.children))
			}
			if n.state.IsComplete() {
				require.Empty(t, n.children, "River nodes should never expand")
			}
		}
		require.Equal(t, 2000, tr.root().visits)
	})
}
