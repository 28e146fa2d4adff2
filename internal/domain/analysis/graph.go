package analysis

import (
	"sort"

	"github.com/archscope/archscope/internal/domain"
)

// FileNode is one node in the dependency graph.
type FileNode struct {
	Identifier string
	Layer      domain.Layer
	Namespace  string
	Edges      []string // outgoing, deduplicated, sorted
}

// DependencyGraph is a directed graph over file identifiers. Nodes are keyed
// by basename, not full path: files with the same basename in different
// directories share a node. This conflation matches the resolution behavior
// downstream consumers depend on; keying by full path would change cycle
// results.
type DependencyGraph struct {
	Nodes map[string]*FileNode
}

// BuildDependencyGraph resolves each file's imported namespaces against the
// set of files that declare those namespaces. Two passes: the ownership map
// must be complete before any edge is resolved.
func BuildDependencyGraph(files []domain.SourceFile) *DependencyGraph {
	g := &DependencyGraph{Nodes: make(map[string]*FileNode)}

	// Pass 1: namespace → owning file identifiers. A namespace may own many
	// files. Files with no namespace never join the graph.
	owners := make(map[string][]string)
	for _, f := range files {
		if f.Namespace == "" {
			continue
		}
		if _, ok := g.Nodes[f.Identifier]; !ok {
			g.Nodes[f.Identifier] = &FileNode{
				Identifier: f.Identifier,
				Layer:      f.Layer,
				Namespace:  f.Namespace,
			}
		}
		if !containsString(owners[f.Namespace], f.Identifier) {
			owners[f.Namespace] = append(owners[f.Namespace], f.Identifier)
		}
	}

	// Pass 2: one import fans out to an edge per owner file. Imports of the
	// file's own namespace and platform namespaces never create edges, and
	// a file is never its own neighbor.
	for _, f := range files {
		if f.Namespace == "" {
			continue
		}
		node := g.Nodes[f.Identifier]
		for _, using := range f.Usings {
			if isPlatformNamespace(using) || using == f.Namespace {
				continue
			}
			for _, owner := range owners[using] {
				if owner == f.Identifier {
					continue
				}
				if !containsString(node.Edges, owner) {
					node.Edges = append(node.Edges, owner)
				}
			}
		}
	}

	for _, node := range g.Nodes {
		sort.Strings(node.Edges)
	}
	return g
}

// EdgeCount returns the total number of directed edges.
func (g *DependencyGraph) EdgeCount() int {
	total := 0
	for _, node := range g.Nodes {
		total += len(node.Edges)
	}
	return total
}

// Identifiers returns all node keys in sorted order.
func (g *DependencyGraph) Identifiers() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
