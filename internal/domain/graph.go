package domain

// Node colors for the depth-first walk: unvisited, on the current path, and
// fully explored.
const (
	nodeWhite = iota
	nodeGray
	nodeBlack
)

// HasCycle reports whether following dependency edges from the activity with
// the given ID can revisit a node on the current path. IDs that resolve to no
// activity are stale references, not edges, and are skipped; a self-reference
// resolves to the node already on the path and is reported immediately.
//
// The traversal uses an explicit stack with one color marking per call, so
// adversarial graphs can neither recurse unboundedly nor alias state across
// calls.
func HasCycle(fromID string, activities []Activity) bool {
	index := make(map[string]int, len(activities))
	for i, a := range activities {
		index[a.ID] = i
	}
	start, ok := index[fromID]
	if !ok {
		return false
	}

	type frame struct {
		node int
		next int
	}
	color := make([]int8, len(activities))
	color[start] = nodeGray
	stack := []frame{{node: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		deps := activities[top.node].DependsOn

		pushed := false
		for top.next < len(deps) {
			depID := deps[top.next]
			top.next++

			depIdx, ok := index[depID]
			if !ok {
				continue
			}
			switch color[depIdx] {
			case nodeGray:
				return true
			case nodeWhite:
				color[depIdx] = nodeGray
				stack = append(stack, frame{node: depIdx})
				pushed = true
			}
			if pushed {
				break
			}
		}
		if !pushed {
			color[top.node] = nodeBlack
			stack = stack[:len(stack)-1]
		}
	}
	return false
}
