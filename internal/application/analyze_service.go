package application

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/archscope/archscope/internal/domain"
	"github.com/archscope/archscope/internal/domain/analysis"
	"github.com/archscope/archscope/internal/log"
)

// AnalyzeService orchestrates the analysis pipeline:
// scan → read+extract (bounded parallel) → classify → detectors → composite.
// It owns no state between runs apart from the in-flight registry that
// serializes scans per root path.
type AnalyzeService struct {
	scanner      domain.SourceScanner
	extractor    domain.SourceExtractor
	configLoader domain.ConfigLoader
	cache        domain.ChangeCache // may be nil

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewAnalyzeService(
	scanner domain.SourceScanner,
	extractor domain.SourceExtractor,
	configLoader domain.ConfigLoader,
	cache domain.ChangeCache,
) *AnalyzeService {
	return &AnalyzeService{
		scanner:      scanner,
		extractor:    extractor,
		configLoader: configLoader,
		cache:        cache,
		inFlight:     make(map[string]bool),
	}
}

// Analyze runs the full engine over the given root. A second concurrent
// call for the same root is rejected with domain.ErrScanInFlight rather
// than queued.
func (s *AnalyzeService) Analyze(rootPath string) (*domain.AnalysisResult, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if !s.acquire(absPath) {
		return nil, domain.ErrScanInFlight
	}
	defer s.release(absPath)

	cfg, err := s.configLoader.Load(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	scan, err := s.scanner.Scan(absPath, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("scan: %d source files under %s", len(scan.SourceFiles), absPath)

	files, hashes, diagnostics := s.extractAll(scan)

	result, err := analysis.Run(absPath, files, cfg)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = diagnostics

	if s.cache != nil {
		if changed, err := s.cache.Diff(absPath, hashes); err == nil {
			log.Debug("change cache: %d of %d files changed since last run", len(changed), len(hashes))
		}
		if err := s.cache.Update(absPath, hashes); err != nil {
			log.Warn("updating change cache: %v", err)
		}
	}

	return result, nil
}

// ChangedFiles reports which source files differ from the persisted change
// cache without running the detectors or touching the cache.
func (s *AnalyzeService) ChangedFiles(rootPath string) ([]string, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("no change cache configured")
	}

	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := s.configLoader.Load(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	scan, err := s.scanner.Scan(absPath, cfg)
	if err != nil {
		return nil, err
	}

	_, hashes, _ := s.extractAll(scan)
	return s.cache.Diff(absPath, hashes)
}

// extractAll reads and extracts every scanned file with a bounded worker
// pool. A file that becomes unreadable mid-scan is skipped with a
// diagnostic; it never aborts the analysis. Output order is fixed by path
// so repeated runs are bit-identical.
func (s *AnalyzeService) extractAll(scan *domain.ScanResult) ([]domain.SourceFile, map[string]string, []string) {
	type slot struct {
		file domain.SourceFile
		hash string
		diag string
		ok   bool
	}
	slots := make([]slot, len(scan.SourceFiles))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, relPath := range scan.SourceFiles {
		g.Go(func() error {
			absFile := filepath.Join(scan.RootPath, filepath.FromSlash(relPath))
			data, err := os.ReadFile(absFile)
			if err != nil {
				slots[i] = slot{diag: fmt.Sprintf("%s: %v", relPath, err)}
				return nil
			}

			raw := string(data)
			ex := s.extractor.Extract(raw)
			identifier := filepath.Base(relPath)

			types := make([]domain.TypeDeclaration, len(ex.Types))
			for j, t := range ex.Types {
				t.File = identifier
				types[j] = t
			}

			slots[i] = slot{
				file: domain.SourceFile{
					Path:       absFile,
					Identifier: identifier,
					Layer:      domain.ClassifyLayer(relPath),
					Raw:        raw,
					Normalized: ex.Normalized,
					Namespace:  ex.Namespace,
					Usings:     ex.Usings,
					Types:      types,
				},
				hash: contentHash(raw),
				ok:   true,
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures become diagnostics

	var files []domain.SourceFile
	hashes := make(map[string]string)
	var diagnostics []string
	for i, sl := range slots {
		switch {
		case sl.ok:
			files = append(files, sl.file)
			hashes[filepath.Join(scan.RootPath, filepath.FromSlash(scan.SourceFiles[i]))] = sl.hash
		case sl.diag != "":
			diagnostics = append(diagnostics, sl.diag)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Strings(diagnostics)
	return files, hashes, diagnostics
}

func (s *AnalyzeService) acquire(rootPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[rootPath] {
		return false
	}
	s.inFlight[rootPath] = true
	return true
}

func (s *AnalyzeService) release(rootPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, rootPath)
}

func contentHash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
