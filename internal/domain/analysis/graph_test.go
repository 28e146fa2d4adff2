package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archscope/archscope/internal/domain"
	"github.com/archscope/archscope/internal/domain/analysis"
)

func TestBuildDependencyGraph_ResolvesImportsToOwners(t *testing.T) {
	files := []domain.SourceFile{
		file("OrderService.cs", domain.LayerApplication, "Shop.Application", "Shop.Domain"),
		file("Order.cs", domain.LayerDomain, "Shop.Domain"),
	}

	g := analysis.BuildDependencyGraph(files)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, []string{"Order.cs"}, g.Nodes["OrderService.cs"].Edges)
	assert.Empty(t, g.Nodes["Order.cs"].Edges)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuildDependencyGraph_ImportFansOutToAllOwners(t *testing.T) {
	files := []domain.SourceFile{
		file("Order.cs", domain.LayerDomain, "Shop.Domain"),
		file("Customer.cs", domain.LayerDomain, "Shop.Domain"),
		file("OrderService.cs", domain.LayerApplication, "Shop.Application", "Shop.Domain"),
	}

	g := analysis.BuildDependencyGraph(files)
	assert.Equal(t, []string{"Customer.cs", "Order.cs"}, g.Nodes["OrderService.cs"].Edges)
}

func TestBuildDependencyGraph_OwnNamespaceNeverCreatesEdges(t *testing.T) {
	files := []domain.SourceFile{
		file("Order.cs", domain.LayerDomain, "Shop.Domain", "Shop.Domain"),
		file("Customer.cs", domain.LayerDomain, "Shop.Domain"),
	}

	g := analysis.BuildDependencyGraph(files)
	// Order.cs imports its own namespace: no edge, not even to Customer.cs.
	assert.Empty(t, g.Nodes["Order.cs"].Edges)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuildDependencyGraph_PlatformNamespacesExcluded(t *testing.T) {
	files := []domain.SourceFile{
		file("Order.cs", domain.LayerDomain, "Shop.Domain",
			"System", "System.Linq", "Microsoft.Extensions.Logging"),
	}

	g := analysis.BuildDependencyGraph(files)
	assert.Empty(t, g.Nodes["Order.cs"].Edges)
}

func TestBuildDependencyGraph_FilesWithoutNamespaceExcluded(t *testing.T) {
	files := []domain.SourceFile{
		file("AssemblyInfo.cs", domain.LayerUnknown, ""),
		file("Order.cs", domain.LayerDomain, "Shop.Domain"),
	}

	g := analysis.BuildDependencyGraph(files)
	require.Len(t, g.Nodes, 1)
	assert.Contains(t, g.Nodes, "Order.cs")
}

func TestBuildDependencyGraph_BasenameConflation(t *testing.T) {
	// Two files share the basename Order.cs: they collapse into one node
	// that carries the union of their outgoing edges.
	a := file("Order.cs", domain.LayerDomain, "Shop.Domain")
	b := file("Order.cs", domain.LayerPresentation, "Shop.Web", "Shop.Application")
	b.Path = "/project/src/Shop.Web/Order.cs"
	svc := file("CheckoutService.cs", domain.LayerApplication, "Shop.Application", "Shop.Domain")

	g := analysis.BuildDependencyGraph([]domain.SourceFile{a, b, svc})
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, []string{"CheckoutService.cs"}, g.Nodes["Order.cs"].Edges)
	assert.Equal(t, []string{"Order.cs"}, g.Nodes["CheckoutService.cs"].Edges)
}

func TestBuildDependencyGraph_EdgesDeduplicatedAndSorted(t *testing.T) {
	files := []domain.SourceFile{
		file("Zebra.cs", domain.LayerDomain, "Shop.Domain"),
		file("Apple.cs", domain.LayerDomain, "Shop.Domain"),
		file("Service.cs", domain.LayerApplication, "Shop.Application",
			"Shop.Domain", "Shop.Domain"),
	}

	g := analysis.BuildDependencyGraph(files)
	assert.Equal(t, []string{"Apple.cs", "Zebra.cs"}, g.Nodes["Service.cs"].Edges)
}

func TestDependencyGraph_Identifiers(t *testing.T) {
	files := []domain.SourceFile{
		file("B.cs", domain.LayerDomain, "Shop.B"),
		file("A.cs", domain.LayerDomain, "Shop.A"),
	}

	g := analysis.BuildDependencyGraph(files)
	assert.Equal(t, []string{"A.cs", "B.cs"}, g.Identifiers())
}
