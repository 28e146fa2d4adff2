package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Stamper resolves the revision an analysis ran against so score ledger
// entries can be tied back to a commit.
type Stamper struct{}

func New() *Stamper {
	return &Stamper{}
}

// CommitHash returns the full HEAD hash for the repository containing
// rootPath. The analyzed tree may be a subdirectory of the repository;
// the .git directory is searched upwards the way git itself does.
func (s *Stamper) CommitHash(rootPath string) (string, error) {
	repo, err := git.PlainOpenWithOptions(rootPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
