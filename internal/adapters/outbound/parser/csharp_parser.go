package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/archscope/archscope/internal/domain"
)

// CSharpExtractor implements domain.SourceExtractor with line-level text
// heuristics. It is not a parser: it does not build a syntax tree, resolve
// symbols or type-check, and accepts the false positives that come with
// that. Extractions are memoized by content hash so re-scans only pay for
// changed files.
type CSharpExtractor struct {
	memo *lru.Cache[string, domain.Extraction]
}

const memoSize = 4096

func New() *CSharpExtractor {
	memo, _ := lru.New[string, domain.Extraction](memoSize)
	return &CSharpExtractor{memo: memo}
}

var (
	namespacePattern = regexp.MustCompile(`(?m)^\s*namespace\s+([A-Za-z_][A-Za-z0-9_.]*)`)
	usingPattern     = regexp.MustCompile(`(?m)^\s*using\s+(?:static\s+)?([A-Za-z_][A-Za-z0-9_.]*)\s*;`)
	typePattern      = regexp.MustCompile(`(?m)^\s*((?:public|internal|private|protected)(?:\s+(?:internal|protected))?\s+)?(?:static\s+|sealed\s+|abstract\s+|partial\s+|readonly\s+)*(class|interface|record)\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

func (e *CSharpExtractor) Extract(raw string) domain.Extraction {
	key := contentHash(raw)
	if cached, ok := e.memo.Get(key); ok {
		return cached
	}

	normalized := stripComments(raw)
	ex := domain.Extraction{Normalized: normalized}

	if m := namespacePattern.FindStringSubmatch(normalized); m != nil {
		ex.Namespace = m[1]
	}
	for _, m := range usingPattern.FindAllStringSubmatch(normalized, -1) {
		ex.Usings = append(ex.Usings, m[1])
	}
	for _, m := range typePattern.FindAllStringSubmatch(normalized, -1) {
		visibility := domain.VisibilityInternal
		if strings.Contains(m[1], "public") {
			visibility = domain.VisibilityPublic
		}
		ex.Types = append(ex.Types, domain.TypeDeclaration{
			Kind:       domain.TypeKind(m[2]),
			Name:       m[3],
			Visibility: visibility,
		})
	}

	e.memo.Add(key, ex)
	return ex
}

func contentHash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// stripComments removes // line comments (whole-line and trailing) and
// /* */ block comments so commented-out code never triggers a finding.
// Comment markers inside string literals are misdetected; accepted.
func stripComments(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	inBlock := false
	for _, line := range strings.SplitAfter(raw, "\n") {
		content, newline := splitTrailingNewline(line)
		out := content
		if inBlock {
			if end := strings.Index(content, "*/"); end >= 0 {
				inBlock = false
				out = stripLine(content[end+2:], &inBlock)
			} else {
				out = ""
			}
		} else {
			out = stripLine(content, &inBlock)
		}
		b.WriteString(out)
		b.WriteString(newline)
	}
	return b.String()
}

// stripLine removes comments from a single line, updating block state.
func stripLine(line string, inBlock *bool) string {
	for {
		lineIdx := strings.Index(line, "//")
		blockIdx := strings.Index(line, "/*")

		if lineIdx >= 0 && (blockIdx < 0 || lineIdx < blockIdx) {
			return line[:lineIdx]
		}
		if blockIdx < 0 {
			return line
		}

		rest := line[blockIdx+2:]
		if end := strings.Index(rest, "*/"); end >= 0 {
			line = line[:blockIdx] + rest[end+2:]
			continue
		}
		*inBlock = true
		return line[:blockIdx]
	}
}

func splitTrailingNewline(line string) (content, newline string) {
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
