package program

// EstimateNestDepth returns the longest modulation chain, in edges, over
// every list any event assigns. When those lists form a cycle the result is
// the operator count, which bounds any chain the cycle guard lets through.
func (p *Program) EstimateNestDepth() int {
	if p.OpCount == 0 {
		return 0
	}
	edges := make([][]int, p.OpCount)
	seen := make(map[[2]int]bool)
	for i := range p.Events {
		for j := range p.Events[i].Ops {
			op := &p.Events[i].Ops[j]
			for r := Role(0); r < NumRoles; r++ {
				for _, to := range op.Mods[r] {
					e := [2]int{op.ID, to}
					if seen[e] {
						continue
					}
					seen[e] = true
					edges[op.ID] = append(edges[op.ID], to)
				}
			}
		}
	}

	const (
		unvisited = iota
		onStack
		done
	)
	state := make([]uint8, p.OpCount)
	depth := make([]int, p.OpCount)
	cyclic := false

	var visit func(n int) int
	visit = func(n int) int {
		switch state[n] {
		case onStack:
			cyclic = true
			return 0
		case done:
			return depth[n]
		}
		state[n] = onStack
		best := 0
		for _, m := range edges[n] {
			if d := visit(m) + 1; d > best {
				best = d
			}
		}
		state[n] = done
		depth[n] = best
		return best
	}

	longest := 0
	for n := range edges {
		if d := visit(n); d > longest {
			longest = d
		}
	}
	if cyclic {
		return p.OpCount
	}
	return longest
}
