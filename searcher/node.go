package searcher

import (
	"math"

	"equity/game"

	"golang.org/x/exp/slices"
)

const noParent = -1

type node struct {
	state    game.State
	parent   int   // Index of the parent in the arena, noParent for the root
	children []int // Arena indices in insertion order
	rewards  float64
	visits   int
}

// tree is an arena of nodes. Index 0 is the root; indices stay valid for the tree's lifetime.
type tree struct {
	nodes []node
}

func newTree(hole game.State) *tree {
	return &tree{
		nodes: []node{{state: hole, parent: noParent}},
	}
}

func (t *tree) root() node {
	return t.nodes[0]
}

func (t *tree) addChild(parent int, state game.State) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{state: state, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// bestChild returns the child with the highest UCB1 score. Ties go to the
// earliest child, so the first unvisited child always wins.
func (t *tree) bestChild(id int) int {
	n := t.nodes[id]
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(CSquared, n.visits)

	maxChild := -1
	maxScore := math.Inf(-1)
	for _, c := range n.children {
		child := t.nodes[c]
		score := policy.evaluate(child.rewards, child.visits)
		if math.IsInf(score, 1) {
			return c
		}
		if score > maxScore {
			maxScore = score
			maxChild = c
		}
	}
	return maxChild
}

// selects descends from the root through best children until it reaches a leaf.
func (t *tree) selects() int {
	id := 0
	for len(t.nodes[id].children) > 0 {
		id = t.bestChild(id)
	}
	return id
}

// backup records a visit and the reward on every node of the path.
func (t *tree) backup(path []int, reward float64) {
	for _, id := range path {
		t.nodes[id].visits++
		t.nodes[id].rewards += reward
	}
}

// path rebuilds the visited path from the root down to id by following parent links.
func (t *tree) path(id int) []int {
	var path []int
	for id != noParent {
		path = append(path, id)
		id = t.nodes[id].parent
	}
	slices.Reverse(path)
	return path
}
