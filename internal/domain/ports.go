package domain

import "errors"

// ErrPathNotFound is returned when the requested root does not exist or is
// not a directory.
var ErrPathNotFound = errors.New("path does not exist or is not a directory")

// ErrScanInFlight is returned when a scan is requested for a root that is
// already being scanned. Callers must serialize scans per root path.
var ErrScanInFlight = errors.New("a scan for this path is already in progress")

// SourceScanner enumerates source files under a root directory, honoring
// the project config's extension, skip dirs and excludes.
type SourceScanner interface {
	Scan(rootPath string, cfg ProjectConfig) (*ScanResult, error)
}

// ScanResult holds the outcome of walking a project directory.
type ScanResult struct {
	RootPath    string   `json:"root_path"`
	SourceFiles []string `json:"source_files"` // relative to RootPath
	AllFiles    int      `json:"all_files"`
}

// Extraction is everything the text heuristics pull out of one file. Type
// declarations carry no file path here; the caller owns file identity.
type Extraction struct {
	Normalized string
	Namespace  string
	Usings     []string
	Types      []TypeDeclaration
}

// SourceExtractor strips comments from a file's text and extracts its
// namespace, imported namespaces and type declarations.
type SourceExtractor interface {
	Extract(raw string) Extraction
}

// ChangeCache is a persisted path→content-hash table. Deleting it is always
// safe and forces a full re-scan.
type ChangeCache interface {
	// Diff returns the subset of files whose content hash differs from the
	// cached value (or that have no cached value).
	Diff(rootPath string, files map[string]string) ([]string, error)
	// Update replaces the cached hashes for the given root.
	Update(rootPath string, hashes map[string]string) error
	// Invalidate removes the cache for the given root.
	Invalidate(rootPath string) error
}

// ScoreEntry is one history snapshot of a completed analysis.
type ScoreEntry struct {
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash,omitempty"`
	Composite  float64 `json:"composite"`
	Level      string  `json:"level"`
	Layering   int     `json:"layering"`
	Encaps     int     `json:"encapsulation"`
	Abstract   int     `json:"abstraction"`
	Cycles     int     `json:"cycles"`
}

// ScoreHistory appends and loads score snapshots for trend tracking.
// The engine itself is stateless across runs; this is caller-side.
type ScoreHistory interface {
	Save(rootPath string, entry ScoreEntry) error
	Load(rootPath string) ([]ScoreEntry, error)
}

// ConfigLoader reads the per-project configuration file.
type ConfigLoader interface {
	Load(rootPath string) (ProjectConfig, error)
}
