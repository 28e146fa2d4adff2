package analysis

import (
	"time"

	"github.com/archscope/archscope/internal/domain"
)

// Run executes the full engine over extracted source files: the three
// detectors, the dependency graph, cycle detection and the composite score.
// Each dimension is computed independently; a failure in one never blocks
// the others. The zero-file case scores 5 everywhere: no evidence of
// violation is treated as clean, not unknown.
func Run(rootPath string, files []domain.SourceFile, cfg domain.ProjectConfig) (*domain.AnalysisResult, error) {
	layering := DetectLayering(files)
	encapsulation := DetectEncapsulation(files)
	abstraction := DetectAbstraction(files, cfg.BusinessNouns, cfg.BusinessVerbs)

	graph := BuildDependencyGraph(files)
	cycleReport, err := DetectCycles(graph, len(files))
	if err != nil {
		return nil, err
	}

	result := &domain.AnalysisResult{
		RootPath:      rootPath,
		Timestamp:     time.Now().UTC(),
		TotalFiles:    len(files),
		FilesInCycles: cycleReport.FilesInCycles,
		Layering:      layering,
		Encapsulation: encapsulation,
		Abstraction:   abstraction,
		Cycles:        cycleReport.Result,
	}
	result.Composite = domain.CompositeScore(result.Dimensions())
	result.Level = domain.LevelFor(result.Composite)
	return result, nil
}
