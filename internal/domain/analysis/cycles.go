package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/archscope/archscope/internal/domain"
)

// CycleReport is the cycle dimension plus the per-file membership index.
type CycleReport struct {
	Result        domain.DimensionResult
	FilesInCycles int
	// Membership maps a file identifier to the id of the cycle it belongs
	// to. SCC decomposition guarantees at most one cycle per file.
	Membership map[string]int
}

// DetectCycles computes strongly connected components of size >= 2 over the
// dependency graph using Tarjan's algorithm (O(V+E), iterative). Each
// non-singleton SCC is one cycle; members are reported in sorted order and
// cycles are ordered by their first member so repeated runs are
// bit-identical.
func DetectCycles(g *DependencyGraph, totalFiles int) (CycleReport, error) {
	ids := g.Identifiers()

	dg := simple.NewDirectedGraph()
	idToNode := make(map[string]int64, len(ids))
	nodeToID := make(map[int64]string, len(ids))
	for i, id := range ids {
		n := int64(i)
		idToNode[id] = n
		nodeToID[n] = id
		dg.AddNode(simple.Node(n))
	}
	for _, id := range ids {
		from := idToNode[id]
		for _, to := range g.Nodes[id].Edges {
			dg.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(idToNode[to])})
		}
	}

	var cycles []domain.Cycle
	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		members := make([]string, len(scc))
		for i, n := range scc {
			members[i] = nodeToID[n.ID()]
		}
		sort.Strings(members)

		layerSet := make(map[domain.Layer]bool)
		for _, m := range members {
			layerSet[g.Nodes[m].Layer] = true
		}
		layers := make([]domain.Layer, 0, len(layerSet))
		for l := range layerSet {
			layers = append(layers, l)
		}
		sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })

		cycles = append(cycles, domain.Cycle{
			Members:  members,
			Length:   len(members),
			Layers:   layers,
			Severity: cycleSeverity(len(members), layerSet[domain.LayerDomain]),
		})
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Members[0] < cycles[j].Members[0] })

	membership := make(map[string]int)
	for i := range cycles {
		cycles[i].ID = i + 1
		for _, m := range cycles[i].Members {
			if prev, seen := membership[m]; seen {
				// Cannot happen in a correct SCC decomposition; kept as a
				// consistency check so a graph-construction regression fails
				// loudly instead of skewing the filesInCycles aggregate.
				return CycleReport{}, fmt.Errorf("file %s assigned to cycles %d and %d", m, prev, cycles[i].ID)
			}
			membership[m] = cycles[i].ID
		}
	}

	score := cycleScore(len(cycles), totalFiles)
	return CycleReport{
		Result: domain.DimensionResult{
			Dimension: domain.DimensionCycles,
			Score:     score,
			Level:     domain.LevelFor(float64(score)),
			Count:     len(cycles),
			Total:     totalFiles,
			Cycles:    cycles,
		},
		FilesInCycles: len(membership),
		Membership:    membership,
	}, nil
}

// cycleSeverity: any Domain member makes the cycle critical; otherwise
// tighter cycles are worse.
func cycleSeverity(length int, touchesDomain bool) domain.Severity {
	switch {
	case touchesDomain:
		return domain.SeverityCritical
	case length == 2:
		return domain.SeverityHigh
	case length <= 4:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// cycleScore maps the cycle rate to a 0..5 score.
func cycleScore(cycleCount, totalFiles int) int {
	if cycleCount == 0 || totalFiles == 0 {
		return 5
	}
	r := float64(cycleCount) / float64(totalFiles)
	switch {
	case r < 0.01:
		return 4
	case r < 0.03:
		return 3
	case r < 0.05:
		return 2
	case r < 0.10:
		return 1
	default:
		return 0
	}
}
