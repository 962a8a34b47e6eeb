package searcher

import "math"

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N int) uct {
	if N == 0 {
		panic("node has children but no visits")
	}
	return uct{numerator: cSquared * math.Log(float64(N))}
}

func (u uct) evaluate(q float64, n int) float64 {
	// Prioritize unexplored nodes
	if n == 0 {
		return math.Inf(1)
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/float64(n) + math.Sqrt(u.numerator/float64(n))
}
