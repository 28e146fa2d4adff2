package domain

import (
	"time"
)

// Severity classifies how damaging a single finding is. It is always a
// deterministic function of static inputs (layer pair, cycle shape, issue
// kind), never of counts or ordering.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Finding is the common shape of everything the detectors emit. Downstream
// aggregation (scoring, rendering, MCP serialization) treats all variants
// uniformly through this interface.
type Finding interface {
	FindingSeverity() Severity
	FindingFile() string
}

// LayeringViolation is a reference from a lower layer to a higher one.
type LayeringViolation struct {
	File        string   `json:"file"`
	SourceLayer Layer    `json:"source_layer"`
	TargetLayer Layer    `json:"target_layer"`
	Namespace   string   `json:"namespace"`
	Severity    Severity `json:"severity"`
}

func (v LayeringViolation) FindingSeverity() Severity { return v.Severity }
func (v LayeringViolation) FindingFile() string       { return v.File }

// TypeKind is the declaration kind of a C# type.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindRecord    TypeKind = "record"
)

// Visibility is the effective access level of a type declaration. Types
// declared without an explicit modifier default to internal.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal"
)

// TypeDeclaration is a single type found in a source file.
type TypeDeclaration struct {
	File       string     `json:"file"`
	Kind       TypeKind   `json:"kind"`
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
}

// ExposureFinding is a public type with no intentionally-public exemption.
type ExposureFinding struct {
	File     string   `json:"file"`
	Type     string   `json:"type"`
	Kind     TypeKind `json:"kind"`
	Layer    Layer    `json:"layer"`
	Severity Severity `json:"severity"`
}

func (f ExposureFinding) FindingSeverity() Severity { return f.Severity }
func (f ExposureFinding) FindingFile() string       { return f.File }

// AbstractionIssue identifies which low-level concern leaked into a file
// judged to contain business logic.
type AbstractionIssue string

const (
	IssueSQLMixing             AbstractionIssue = "sql_mixing"
	IssueEFInDomain            AbstractionIssue = "ef_in_domain"
	IssueHTTPMixing            AbstractionIssue = "http_mixing"
	IssueFileIOMixing          AbstractionIssue = "file_io_mixing"
	IssueSerializationInDomain AbstractionIssue = "serialization_in_domain"
	IssueExcessiveLogging      AbstractionIssue = "excessive_logging"
)

// AbstractionFinding is one leaked concern in one file. At most one finding
// per issue kind per file.
type AbstractionFinding struct {
	File     string           `json:"file"`
	Layer    Layer            `json:"layer"`
	Issue    AbstractionIssue `json:"issue"`
	Evidence string           `json:"evidence"`
	Severity Severity         `json:"severity"`
}

func (f AbstractionFinding) FindingSeverity() Severity { return f.Severity }
func (f AbstractionFinding) FindingFile() string       { return f.File }

// Cycle is one strongly connected component of size >= 2 in the file
// dependency graph. Members are file identifiers in stable (sorted) order.
type Cycle struct {
	ID       int      `json:"id"`
	Members  []string `json:"members"`
	Length   int      `json:"length"`
	Layers   []Layer  `json:"layers"`
	Severity Severity `json:"severity"`
}

func (c Cycle) FindingSeverity() Severity { return c.Severity }

// FindingFile returns the first member as the cycle's representative file.
func (c Cycle) FindingFile() string {
	if len(c.Members) == 0 {
		return ""
	}
	return c.Members[0]
}

// Dimension names the four quality axes.
type Dimension string

const (
	DimensionLayering      Dimension = "layering"
	DimensionEncapsulation Dimension = "encapsulation"
	DimensionAbstraction   Dimension = "abstraction"
	DimensionCycles        Dimension = "cycles"
)

// DimensionResult is the scored outcome of one quality axis.
type DimensionResult struct {
	Dimension Dimension `json:"dimension"`
	Score     int       `json:"score"` // 0..5
	Level     string    `json:"level"`
	Count     int       `json:"count"` // findings driving the rate
	Total     int       `json:"total"` // denominator (files, types)

	Violations  []LayeringViolation  `json:"violations,omitempty"`
	Exposures   []ExposureFinding    `json:"exposures,omitempty"`
	Leaks       []AbstractionFinding `json:"leaks,omitempty"`
	Cycles      []Cycle              `json:"cycles,omitempty"`
	PublicRatio float64              `json:"public_ratio,omitempty"` // encapsulation only, percent
}

// LevelFor maps a 0..5 score to its maturity label. Bands are fixed.
func LevelFor(score float64) string {
	switch {
	case score >= 4.5:
		return "Excellent"
	case score >= 3.5:
		return "Good"
	case score >= 2.5:
		return "Acceptable"
	case score >= 1.5:
		return "NeedsImprovement"
	case score >= 0.5:
		return "Poor"
	default:
		return "Critical"
	}
}

// AnalysisResult is the engine's full output for one scan: a plain structured
// value with no embedded formatting, safe to serialize anywhere.
type AnalysisResult struct {
	RootPath   string    `json:"root_path"`
	Timestamp  time.Time `json:"timestamp"`
	CommitHash string    `json:"commit_hash,omitempty"`

	TotalFiles    int `json:"total_files"`
	FilesInCycles int `json:"files_in_cycles"`

	Layering      DimensionResult `json:"layering"`
	Encapsulation DimensionResult `json:"encapsulation"`
	Abstraction   DimensionResult `json:"abstraction"`
	Cycles        DimensionResult `json:"cycles"`

	Composite float64 `json:"composite"`
	Level     string  `json:"level"`

	// Diagnostics records per-file read failures that were skipped.
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Dimensions returns the four dimension results in fixed order.
func (r *AnalysisResult) Dimensions() []DimensionResult {
	return []DimensionResult{r.Layering, r.Encapsulation, r.Abstraction, r.Cycles}
}

// CompositeScore is the unweighted mean of the four dimension scores.
// Rounding happens only at display time.
func CompositeScore(dims []DimensionResult) float64 {
	if len(dims) == 0 {
		return 0
	}
	total := 0
	for _, d := range dims {
		total += d.Score
	}
	return float64(total) / float64(len(dims))
}

// SourceFile is one collected file after normalization and extraction.
// Created once per scan, immutable afterwards, never persisted.
type SourceFile struct {
	Path       string   // absolute
	Identifier string   // basename, the graph node key
	Layer      Layer
	Raw        string
	Normalized string   // comments stripped
	Namespace  string   // "" when no declaration was found
	Usings     []string // ordered, duplicates allowed
	Types      []TypeDeclaration
}
