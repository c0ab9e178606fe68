package refgraph

import (
	"slices"
	"testing"
)

func TestRelatedDepthBounds(t *testing.T) {
	g := newTestGraph(t)
	// A - B - C linear chain, D disconnected.
	mustAdd(t, g, "A", "B", TypeReferences)
	mustAdd(t, g, "B", "C", TypeRelatesTo)
	mustAdd(t, g, "D", "E", TypeReferences)

	tests := []struct {
		name     string
		start    string
		maxDepth int
		want     []string
	}{
		{name: "depth 1 sees direct neighbors only", start: "A", maxDepth: 1, want: []string{"B"}},
		{name: "depth 2 reaches two hops", start: "A", maxDepth: 2, want: []string{"B", "C"}},
		{name: "depth beyond graph size is safe", start: "A", maxDepth: 10, want: []string{"B", "C"}},
		{name: "edges are undirected for discovery", start: "C", maxDepth: 2, want: []string{"A", "B"}},
		{name: "zero depth", start: "A", maxDepth: 0, want: nil},
		{name: "unknown start", start: "Z", maxDepth: 3, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Related(tt.start, tt.maxDepth)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Related(%q, %d) = %v, want %v", tt.start, tt.maxDepth, got, tt.want)
			}
		})
	}
}

func TestRelatedTerminatesOnCycles(t *testing.T) {
	g := newTestGraph(t)
	// Fully cyclic triangle.
	mustAdd(t, g, "A", "B", TypeReferences)
	mustAdd(t, g, "B", "C", TypeReferences)
	mustAdd(t, g, "C", "A", TypeReferences)

	got := g.Related("A", 100)
	if !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("Related() on cyclic graph = %v, want [B C]", got)
	}
}

func TestSupersessionChainLinear(t *testing.T) {
	g := newTestGraph(t)
	mustAdd(t, g, "adr-003", "adr-002", TypeSupersedes)
	mustAdd(t, g, "adr-002", "adr-001", TypeSupersedes)
	// A non-supersedes edge must not extend the chain.
	mustAdd(t, g, "adr-001", "plan-001", TypeReferences)

	chain := g.SupersessionChain("adr-003")
	if !slices.Equal(chain.Documents, []string{"adr-003", "adr-002", "adr-001"}) {
		t.Errorf("chain = %v", chain.Documents)
	}
	if chain.Cycle {
		t.Error("linear chain should not report a cycle")
	}
}

func TestSupersessionChainCycle(t *testing.T) {
	g := newTestGraph(t)
	mustAdd(t, g, "adr-1", "adr-2", TypeSupersedes)
	mustAdd(t, g, "adr-2", "adr-1", TypeSupersedes)

	chain := g.SupersessionChain("adr-1")
	if !slices.Equal(chain.Documents, []string{"adr-1", "adr-2"}) {
		t.Errorf("chain = %v, want partial chain up to the cycle", chain.Documents)
	}
	if !chain.Cycle {
		t.Error("mutual supersession should report a cycle")
	}
	if chain.CycleAt != "adr-1" {
		t.Errorf("CycleAt = %q, want adr-1", chain.CycleAt)
	}
}

func TestSupersessionChainNoEdges(t *testing.T) {
	g := newTestGraph(t)
	chain := g.SupersessionChain("adr-solo")
	if !slices.Equal(chain.Documents, []string{"adr-solo"}) {
		t.Errorf("chain = %v, want just the start", chain.Documents)
	}
	if chain.Cycle {
		t.Error("no edges should mean no cycle")
	}
}

func TestSupersessionChainDeterministicBranch(t *testing.T) {
	g := newTestGraph(t)
	mustAdd(t, g, "adr-5", "adr-3", TypeSupersedes)
	mustAdd(t, g, "adr-5", "adr-1", TypeSupersedes)

	chain := g.SupersessionChain("adr-5")
	if len(chain.Documents) < 2 || chain.Documents[1] != "adr-1" {
		t.Errorf("branching walk should follow the smallest target, got %v", chain.Documents)
	}
}
