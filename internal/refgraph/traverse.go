package refgraph

import "sort"

// Related explores the graph outward from id, treating edges as undirected,
// and returns the identifiers discovered within maxDepth hops, sorted. The
// start node is excluded. A visited set guarantees termination on cyclic
// graphs; cycles are not an error for discovery.
func (g *Graph) Related(id string, maxDepth int) []string {
	if maxDepth <= 0 {
		return nil
	}

	g.mu.RLock()
	neighbors := make(map[string][]string)
	for _, ref := range g.refs {
		neighbors[ref.From] = append(neighbors[ref.From], ref.To)
		neighbors[ref.To] = append(neighbors[ref.To], ref.From)
	}
	g.mu.RUnlock()

	visited := map[string]bool{id: true}
	frontier := []string{id}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, current := range frontier {
			for _, neighbor := range neighbors[current] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	delete(visited, id)
	result := make([]string, 0, len(visited))
	for node := range visited {
		result = append(result, node)
	}
	sort.Strings(result)
	return result
}

// Chain is the result of walking supersedes edges from a starting document.
type Chain struct {
	// Documents is the ordered chain, starting with the requested document.
	Documents []string
	// Cycle is set when following the next supersedes edge would revisit a
	// document already in the chain. The chain up to that point is returned;
	// a cycle is an anomaly to report, not an error.
	Cycle bool
	// CycleAt is the document whose revisit was prevented, when Cycle is set.
	CycleAt string
}

// SupersessionChain follows only supersedes edges starting at id and builds
// the ordered chain. Traversal stops when a document has no outgoing
// supersedes edge or when continuing would revisit a chain member.
// When a document supersedes several others, the lexicographically smallest
// target is followed so the walk is deterministic.
func (g *Graph) SupersessionChain(id string) Chain {
	chain := Chain{Documents: []string{id}}
	seen := map[string]bool{id: true}

	current := id
	for {
		next, ok := g.nextSuperseded(current)
		if !ok {
			return chain
		}
		if seen[next] {
			chain.Cycle = true
			chain.CycleAt = next
			return chain
		}
		chain.Documents = append(chain.Documents, next)
		seen[next] = true
		current = next
	}
}

// nextSuperseded returns the target of the document's supersedes edge.
func (g *Graph) nextSuperseded(id string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var targets []string
	for _, ref := range g.refs {
		if ref.From == id && ref.Type == TypeSupersedes {
			targets = append(targets, ref.To)
		}
	}
	if len(targets) == 0 {
		return "", false
	}
	sort.Strings(targets)
	return targets[0], true
}
