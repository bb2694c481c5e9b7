package maze

// Connected reports whether b can be reached from a through non-Wall cells
// using 4-directional moves. Marks are ignored, so the answer describes the
// wall layout only.
//
// Time:   O(R·C).
// Memory: O(R·C) for the seen flags and queue.
func (g *Grid) Connected(a, b Coord) bool {
	if !g.InBounds(a) || !g.InBounds(b) || g.At(a) == Wall || g.At(b) == Wall {
		return false
	}
	seen := make([]bool, len(g.cells))
	i0 := g.index(a)
	seen[i0] = true
	queue := []int{i0}
	target := g.index(b)

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		if u == target {
			return true
		}
		uc := g.Coordinate(u)
		for _, d := range offsets {
			vc := uc.Add(d)
			// non-Wall cells are interior, so vc is always in bounds
			if g.At(vc) == Wall {
				continue
			}
			vi := g.index(vc)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}
	return false
}
