// Package analysis contains the four architecture quality detectors, the
// inter-file dependency graph and the scoring functions. Everything here is
// pure: data in, findings and scores out, no I/O.
package analysis

import (
	"strings"

	"github.com/archscope/archscope/internal/domain"
)

// platformPrefixes are namespace roots excluded from layering checks and
// graph edges. References into the platform framework carry no architectural
// signal.
var platformPrefixes = []string{"System", "Microsoft"}

func isPlatformNamespace(ns string) bool {
	for _, p := range platformPrefixes {
		if ns == p || strings.HasPrefix(ns, p+".") {
			return true
		}
	}
	return false
}

// DetectLayering finds references from lower layers to higher ones by
// matching disallowed layer names as substrings of imported namespaces.
func DetectLayering(files []domain.SourceFile) domain.DimensionResult {
	var violations []domain.LayeringViolation

	for _, f := range files {
		targets := domain.DisallowedTargets(f.Layer)
		if len(targets) == 0 {
			continue
		}
		for _, using := range f.Usings {
			if isPlatformNamespace(using) {
				continue
			}
			// A file importing its own namespace never violates through
			// that import alone.
			if f.Namespace != "" && using == f.Namespace {
				continue
			}
			lowered := strings.ToLower(using)
			for _, target := range targets {
				if strings.Contains(lowered, strings.ToLower(string(target))) {
					violations = append(violations, domain.LayeringViolation{
						File:        f.Identifier,
						SourceLayer: f.Layer,
						TargetLayer: target,
						Namespace:   using,
						Severity:    domain.LayeringSeverity(f.Layer, target),
					})
				}
			}
		}
	}

	score := layeringScore(len(violations), len(files))
	return domain.DimensionResult{
		Dimension:  domain.DimensionLayering,
		Score:      score,
		Level:      domain.LevelFor(float64(score)),
		Count:      len(violations),
		Total:      len(files),
		Violations: violations,
	}
}

// layeringScore maps the violation rate to a 0..5 score.
func layeringScore(violations, totalFiles int) int {
	if violations == 0 || totalFiles == 0 {
		return 5
	}
	r := float64(violations) / float64(totalFiles)
	switch {
	case r < 0.02:
		return 4
	case r < 0.05:
		return 3
	case r < 0.10:
		return 2
	case r < 0.20:
		return 1
	default:
		return 0
	}
}
