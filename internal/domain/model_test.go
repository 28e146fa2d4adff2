package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archscope/archscope/internal/domain"
)

func TestLevelFor_Bands(t *testing.T) {
	tests := []struct {
		score float64
		level string
	}{
		{5, "Excellent"},
		{4.5, "Excellent"},
		{4.25, "Good"},
		{3.5, "Good"},
		{3.0, "Acceptable"},
		{2.5, "Acceptable"},
		{2.0, "NeedsImprovement"},
		{1.5, "NeedsImprovement"},
		{1.0, "Poor"},
		{0.5, "Poor"},
		{0.25, "Critical"},
		{0, "Critical"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, domain.LevelFor(tt.score), "score %.2f", tt.score)
	}
}

func TestCompositeScore_UnweightedMean(t *testing.T) {
	dims := []domain.DimensionResult{
		{Score: 5}, {Score: 4}, {Score: 3}, {Score: 5},
	}
	assert.InDelta(t, 4.25, domain.CompositeScore(dims), 1e-9)
}

func TestCompositeScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, domain.CompositeScore(nil))
}

func TestFinding_CommonInterface(t *testing.T) {
	findings := []domain.Finding{
		domain.LayeringViolation{File: "a.cs", Severity: domain.SeverityCritical},
		domain.ExposureFinding{File: "b.cs", Severity: domain.SeverityLow},
		domain.AbstractionFinding{File: "c.cs", Severity: domain.SeverityHigh},
		domain.Cycle{Members: []string{"d.cs", "e.cs"}, Severity: domain.SeverityMedium},
	}

	assert.Equal(t, "a.cs", findings[0].FindingFile())
	assert.Equal(t, "b.cs", findings[1].FindingFile())
	assert.Equal(t, "c.cs", findings[2].FindingFile())
	assert.Equal(t, "d.cs", findings[3].FindingFile())
	assert.Equal(t, domain.SeverityMedium, findings[3].FindingSeverity())
}

func TestCycle_EmptyMembers(t *testing.T) {
	assert.Equal(t, "", domain.Cycle{}.FindingFile())
}
