package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/archscope/archscope/internal/domain"
)

// businessNouns and businessVerbs form the vocabulary gate: only files that
// appear to carry business logic are examined for leaked concerns.
var (
	businessNouns = []string{"Order", "Customer", "Payment", "Invoice", "Product", "Account"}
	businessVerbs = []string{"Calculate", "Process", "Validate", "Approve", "Submit"}
)

// abstractionRule is one pattern check. Each rule produces at most one
// finding per file. The table is the pluggable seam: a real parser could
// feed the same rule set without touching scoring.
type abstractionRule struct {
	issue    domain.AbstractionIssue
	pattern  *regexp.Regexp
	applies  func(domain.Layer) bool
	severity func(domain.Layer) domain.Severity
}

func coreLayer(l domain.Layer) bool {
	return l == domain.LayerDomain || l == domain.LayerApplication
}

func anyLayer(domain.Layer) bool        { return true }
func domainOnly(l domain.Layer) bool    { return l == domain.LayerDomain }
func fixed(s domain.Severity) func(domain.Layer) domain.Severity {
	return func(domain.Layer) domain.Severity { return s }
}

var abstractionRules = []abstractionRule{
	{
		issue:   domain.IssueSQLMixing,
		pattern: regexp.MustCompile(`SqlConnection|SqlCommand|SqlDataAdapter|SqlDataReader|ExecuteNonQuery|ExecuteReader|ExecuteScalar`),
		applies: anyLayer,
		severity: func(l domain.Layer) domain.Severity {
			if coreLayer(l) {
				return domain.SeverityCritical
			}
			return domain.SeverityMedium
		},
	},
	{
		issue:    domain.IssueEFInDomain,
		pattern:  regexp.MustCompile(`DbContext|DbSet<|\.Include\(`),
		applies:  domainOnly,
		severity: fixed(domain.SeverityCritical),
	},
	{
		issue:   domain.IssueHTTPMixing,
		pattern: regexp.MustCompile(`HttpClient|HttpRequestMessage|HttpWebRequest|RestClient`),
		applies: anyLayer,
		severity: func(l domain.Layer) domain.Severity {
			if coreLayer(l) {
				return domain.SeverityCritical
			}
			return domain.SeverityLow
		},
	},
	{
		issue:   domain.IssueFileIOMixing,
		pattern: regexp.MustCompile(`File\.(ReadAll\w*|WriteAll\w*|Open\w*|Create|Delete|Exists)|StreamReader|StreamWriter|FileStream`),
		applies: anyLayer,
		severity: func(l domain.Layer) domain.Severity {
			if l == domain.LayerDomain {
				return domain.SeverityHigh
			}
			return domain.SeverityMedium
		},
	},
	{
		issue:    domain.IssueSerializationInDomain,
		pattern:  regexp.MustCompile(`JsonSerializer|JsonConvert|XmlSerializer|DataContractSerializer`),
		applies:  domainOnly,
		severity: fixed(domain.SeverityHigh),
	},
}

var loggingCallPattern = regexp.MustCompile(`\.Log(Trace|Debug|Information|Warning|Error|Critical)\s*\(`)

const excessiveLoggingThreshold = 5

// DetectAbstraction flags files that mix business logic with low-level
// concerns. Files without business vocabulary are treated as
// infrastructure-only and skipped entirely.
func DetectAbstraction(files []domain.SourceFile, extraNouns, extraVerbs []string) domain.DimensionResult {
	vocab := buildVocabulary(extraNouns, extraVerbs)
	vocabPattern := compileVocabulary(vocab)

	var leaks []domain.AbstractionFinding
	for _, f := range files {
		if !hasBusinessVocabulary(f, vocab, vocabPattern) {
			continue
		}
		for _, rule := range abstractionRules {
			if !rule.applies(f.Layer) {
				continue
			}
			if loc := rule.pattern.FindString(f.Normalized); loc != "" {
				leaks = append(leaks, domain.AbstractionFinding{
					File:     f.Identifier,
					Layer:    f.Layer,
					Issue:    rule.issue,
					Evidence: loc,
					Severity: rule.severity(f.Layer),
				})
			}
		}
		if f.Layer == domain.LayerDomain {
			if n := len(loggingCallPattern.FindAllString(f.Normalized, -1)); n > excessiveLoggingThreshold {
				leaks = append(leaks, domain.AbstractionFinding{
					File:     f.Identifier,
					Layer:    f.Layer,
					Issue:    domain.IssueExcessiveLogging,
					Evidence: loggingCallPattern.String(),
					Severity: domain.SeverityLow,
				})
			}
		}
	}

	score := abstractionScore(len(leaks), len(files))
	return domain.DimensionResult{
		Dimension: domain.DimensionAbstraction,
		Score:     score,
		Level:     domain.LevelFor(float64(score)),
		Count:     len(leaks),
		Total:     len(files),
		Leaks:     leaks,
	}
}

func buildVocabulary(extraNouns, extraVerbs []string) map[string]bool {
	vocab := make(map[string]bool)
	for _, w := range businessNouns {
		vocab[w] = true
	}
	for _, w := range businessVerbs {
		vocab[w] = true
	}
	for _, w := range extraNouns {
		vocab[w] = true
	}
	for _, w := range extraVerbs {
		vocab[w] = true
	}
	return vocab
}

// compileVocabulary builds one alternation matching any vocabulary word used
// as a call prefix (e.g. CalculateTotal(, ProcessPayment().
func compileVocabulary(vocab map[string]bool) *regexp.Regexp {
	words := make([]string, 0, len(vocab))
	for w := range vocab {
		words = append(words, regexp.QuoteMeta(w))
	}
	sort.Strings(words)
	return regexp.MustCompile(`\b(` + strings.Join(words, "|") + `)\w*\s*\(`)
}

// hasBusinessVocabulary checks declared type names word by word, then falls
// back to a whole-word search of the normalized text.
func hasBusinessVocabulary(f domain.SourceFile, vocab map[string]bool, vocabPattern *regexp.Regexp) bool {
	for _, t := range f.Types {
		for _, word := range camelcase.Split(t.Name) {
			if vocab[word] {
				return true
			}
		}
	}
	return vocabPattern.MatchString(f.Normalized)
}

// abstractionScore maps the leak rate to a 0..5 score.
func abstractionScore(issues, totalFiles int) int {
	if issues == 0 || totalFiles == 0 {
		return 5
	}
	r := float64(issues) / float64(totalFiles)
	switch {
	case r < 0.05:
		return 4
	case r < 0.10:
		return 3
	case r < 0.20:
		return 2
	case r < 0.30:
		return 1
	default:
		return 0
	}
}
