package domain

import (
	"path/filepath"
	"strings"
)

// Layer is one of the fixed architectural zones a file can belong to,
// assigned purely by path convention.
type Layer string

const (
	LayerDomain         Layer = "Domain"
	LayerApplication    Layer = "Application"
	LayerInfrastructure Layer = "Infrastructure"
	LayerPresentation   Layer = "Presentation"
	LayerAPI            Layer = "API"
	LayerWeb            Layer = "Web"
	LayerUnknown        Layer = "Unknown"
)

// layerKeywords maps directory-name keywords to layers, longest first so
// e.g. "infrastructure" wins over "infra". Matched case-insensitively as a
// substring of each path segment, which covers both bare layer directories
// and project-style names like Shop.Domain.
var layerKeywords = []struct {
	keyword string
	layer   Layer
}{
	{"infrastructure", LayerInfrastructure},
	{"presentation", LayerPresentation},
	{"application", LayerApplication},
	{"persistence", LayerInfrastructure},
	{"entities", LayerDomain},
	{"domain", LayerDomain},
	{"infra", LayerInfrastructure},
	{"web", LayerWeb},
	{"api", LayerAPI},
}

// ClassifyLayer maps a file path to a layer by its directory segments.
// The first matching segment from the root wins; files outside any known
// segment are Unknown.
func ClassifyLayer(path string) Layer {
	normalized := filepath.ToSlash(path)
	for _, seg := range strings.Split(normalized, "/") {
		lower := strings.ToLower(seg)
		for _, k := range layerKeywords {
			if strings.Contains(lower, k.keyword) {
				return k.layer
			}
		}
	}
	return LayerUnknown
}

// allowedDependencies is the strict layer order: a layer may only reference
// the layers listed here. Presentation, API and Web may depend on anything.
var allowedDependencies = map[Layer][]Layer{
	LayerDomain:         {},
	LayerApplication:    {LayerDomain},
	LayerInfrastructure: {LayerDomain, LayerApplication},
}

// DisallowedTargets returns, in fixed order, the layers the given source
// layer must not reference. Outer layers (Presentation, API, Web) and
// Unknown files are unconstrained and return nil.
func DisallowedTargets(source Layer) []Layer {
	allowed, constrained := allowedDependencies[source]
	if !constrained {
		return nil
	}
	allowedSet := map[Layer]bool{source: true}
	for _, l := range allowed {
		allowedSet[l] = true
	}
	var targets []Layer
	for _, l := range []Layer{LayerDomain, LayerApplication, LayerInfrastructure, LayerPresentation, LayerAPI, LayerWeb} {
		if !allowedSet[l] {
			targets = append(targets, l)
		}
	}
	return targets
}

// LayeringSeverity is the fixed severity table for a disallowed layer pair.
func LayeringSeverity(source, target Layer) Severity {
	switch {
	case source == LayerDomain && target == LayerInfrastructure:
		return SeverityCritical
	case source == LayerDomain && target == LayerApplication:
		return SeverityHigh
	case source == LayerApplication && target == LayerInfrastructure:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
