package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/archscope/archscope/internal/domain"
)

// skipDirs are build, dependency and VCS output trees that never contain
// analyzable source.
var skipDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	"node_modules": true,
	".git":         true,
	".vs":          true,
	"packages":     true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

func (s *FileScanner) Scan(rootPath string, cfg domain.ProjectConfig) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		return nil, domain.ErrPathNotFound
	}

	extraSkip := make(map[string]bool, len(cfg.SkipDirs))
	for _, d := range cfg.SkipDirs {
		extraSkip[strings.TrimSuffix(d, "/")] = true
	}
	exclude := make(map[string]bool, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		exclude[filepath.ToSlash(strings.TrimSuffix(p, "/"))] = true
	}
	extension := cfg.Extension()

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtree below a valid root: skip it, keep walking.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] || extraSkip[d.Name()] || exclude[relPath] {
				return filepath.SkipDir
			}
			return nil
		}

		result.AllFiles++
		if strings.HasSuffix(d.Name(), extension) && !exclude[relPath] {
			result.SourceFiles = append(result.SourceFiles, relPath)
		}
		return nil
	})

	return result, err
}
