package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archscope/archscope/internal/domain"
	"github.com/archscope/archscope/internal/domain/analysis"
)

func TestRun_EmptyScanScoresCleanEverywhere(t *testing.T) {
	result, err := analysis.Run("/project", nil, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "/project", result.RootPath)
	assert.Equal(t, 0, result.TotalFiles)
	assert.Equal(t, 0, result.FilesInCycles)
	for _, dim := range result.Dimensions() {
		assert.Equal(t, 5, dim.Score, "dimension %s", dim.Dimension)
	}
	assert.Equal(t, 5.0, result.Composite)
	assert.Equal(t, "Excellent", result.Level)
	assert.False(t, result.Timestamp.IsZero())
}

func TestRun_CompositeIsUnweightedMean(t *testing.T) {
	// One Domain file importing Infrastructure, all types public, SQL in the
	// core: layering, encapsulation and abstraction all take hits while the
	// graph stays acyclic.
	order := file("Order.cs", domain.LayerDomain, "Store.Domain", "Store.Infrastructure")
	order.Normalized = "public class Order { decimal CalculateTotal() { var c = new SqlCommand(); return 0; } }"
	order.Types = []domain.TypeDeclaration{
		{File: "Order.cs", Kind: domain.KindClass, Name: "Order", Visibility: domain.VisibilityPublic},
	}
	store := file("OrderStore.cs", domain.LayerInfrastructure, "Store.Infrastructure")
	store.Normalized = "public class OrderStore { }"
	store.Types = []domain.TypeDeclaration{
		{File: "OrderStore.cs", Kind: domain.KindClass, Name: "OrderStore", Visibility: domain.VisibilityPublic},
	}

	result, err := analysis.Run("/project", []domain.SourceFile{order, store}, domain.DefaultConfig())
	require.NoError(t, err)

	// 1 violation / 2 files, 2/2 public, 1 leak / 2 files, no cycles.
	assert.Equal(t, 0, result.Layering.Score)
	assert.Equal(t, 0, result.Encapsulation.Score)
	assert.Equal(t, 0, result.Abstraction.Score)
	assert.Equal(t, 5, result.Cycles.Score)
	assert.Equal(t, 1.25, result.Composite)
	assert.Equal(t, "Poor", result.Level)
}

func TestRun_IsDeterministic(t *testing.T) {
	files := []domain.SourceFile{
		file("Zeta.cs", domain.LayerUnknown, "App.Zeta", "App.Yankee"),
		file("Yankee.cs", domain.LayerUnknown, "App.Yankee", "App.Zeta"),
		file("Alpha.cs", domain.LayerUnknown, "App.Alpha", "App.Bravo"),
		file("Bravo.cs", domain.LayerUnknown, "App.Bravo", "App.Alpha"),
	}

	first, err := analysis.Run("/project", files, domain.DefaultConfig())
	require.NoError(t, err)
	second, err := analysis.Run("/project", files, domain.DefaultConfig())
	require.NoError(t, err)

	first.Timestamp = second.Timestamp
	assert.Equal(t, first, second)
}
