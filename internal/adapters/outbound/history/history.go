package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/archscope/archscope/internal/domain"
)

const historyFile = ".archscope/history/scores.json"

// FileHistory implements domain.ScoreHistory using JSON file storage. The
// engine itself is stateless across runs; this ledger is what trend
// tracking feeds on.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(rootPath string, entry domain.ScoreEntry) error {
	entries, err := h.Load(rootPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(rootPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(rootPath string) ([]domain.ScoreEntry, error) {
	data, err := os.ReadFile(filepath.Join(rootPath, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.ScoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
