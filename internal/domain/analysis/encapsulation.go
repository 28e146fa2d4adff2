package analysis

import (
	"path/filepath"
	"strings"

	"github.com/archscope/archscope/internal/domain"
)

// exemptSuffixes name types that are public by convention.
var exemptSuffixes = []string{"Controller", "Dto", "Request", "Response", "Contract"}

// exemptDirs are directory segments that hold intentionally public contracts.
var exemptDirs = map[string]bool{
	"contracts": true,
	"dtos":      true,
	"dto":       true,
}

// outerLayers never get exposure findings: their types face the outside.
var outerLayers = map[domain.Layer]bool{
	domain.LayerPresentation: true,
	domain.LayerAPI:          true,
	domain.LayerWeb:          true,
}

// DetectEncapsulation measures type-visibility discipline: the share of
// public types across the scan, flagging public types with no
// intentionally-public exemption.
func DetectEncapsulation(files []domain.SourceFile) domain.DimensionResult {
	var exposures []domain.ExposureFinding
	publicCount, totalCount := 0, 0

	for _, f := range files {
		for _, t := range f.Types {
			totalCount++
			if t.Visibility != domain.VisibilityPublic {
				continue
			}
			publicCount++
			if isExempt(f, t) {
				continue
			}
			exposures = append(exposures, domain.ExposureFinding{
				File:     f.Identifier,
				Type:     t.Name,
				Kind:     t.Kind,
				Layer:    f.Layer,
				Severity: exposureSeverity(f.Layer),
			})
		}
	}

	var publicPct float64
	if totalCount > 0 {
		publicPct = float64(publicCount) / float64(totalCount) * 100
	}

	score := encapsulationScore(publicPct)
	return domain.DimensionResult{
		Dimension:   domain.DimensionEncapsulation,
		Score:       score,
		Level:       domain.LevelFor(float64(score)),
		Count:       publicCount,
		Total:       totalCount,
		Exposures:   exposures,
		PublicRatio: publicPct,
	}
}

func isExempt(f domain.SourceFile, t domain.TypeDeclaration) bool {
	if outerLayers[f.Layer] {
		return true
	}
	for _, suffix := range exemptSuffixes {
		if strings.HasSuffix(t.Name, suffix) {
			return true
		}
	}
	for _, seg := range strings.Split(filepath.ToSlash(f.Path), "/") {
		if exemptDirs[strings.ToLower(seg)] {
			return true
		}
	}
	return false
}

// exposureSeverity: a public type deep in the core is worse than one near
// the edge.
func exposureSeverity(layer domain.Layer) domain.Severity {
	switch layer {
	case domain.LayerDomain:
		return domain.SeverityHigh
	case domain.LayerApplication:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// encapsulationScore maps the public-type percentage to a 0..5 score.
func encapsulationScore(publicPct float64) int {
	switch {
	case publicPct < 20:
		return 5
	case publicPct < 30:
		return 4
	case publicPct < 40:
		return 3
	case publicPct < 50:
		return 2
	case publicPct < 60:
		return 1
	default:
		return 0
	}
}
