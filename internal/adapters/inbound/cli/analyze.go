package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	cacheAdapter "github.com/archscope/archscope/internal/adapters/outbound/cache"
	"github.com/archscope/archscope/internal/adapters/outbound/config"
	"github.com/archscope/archscope/internal/adapters/outbound/gitinfo"
	"github.com/archscope/archscope/internal/adapters/outbound/history"
	"github.com/archscope/archscope/internal/adapters/outbound/parser"
	"github.com/archscope/archscope/internal/adapters/outbound/scanner"
	"github.com/archscope/archscope/internal/adapters/outbound/tui"
	"github.com/archscope/archscope/internal/application"
	"github.com/archscope/archscope/internal/domain"
	"github.com/archscope/archscope/internal/log"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		jsonOutput  bool
		minScore    float64
		noCache     bool
		showHistory bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a source tree's architecture maturity",
		Long:  "Score a C# source tree across four dimensions: layer dependencies, type visibility, abstraction separation and cycle freedom.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if verbose {
				log.SetVerbose()
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			var changeCache domain.ChangeCache
			if !noCache {
				changeCache = cacheAdapter.New()
			}
			svc := application.NewAnalyzeService(
				scanner.New(),
				parser.New(),
				config.New(),
				changeCache,
			)

			result, err := svc.Analyze(absPath)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			// Attach git commit hash if available
			gi := gitinfo.New()
			if hash, err := gi.CommitHash(absPath); err == nil {
				result.CommitHash = hash
			}

			// Save a snapshot to the score ledger, best-effort
			hist := history.New()
			_ = hist.Save(absPath, domain.ScoreEntry{
				Timestamp:  time.Now().Format(time.RFC3339),
				CommitHash: result.CommitHash,
				Composite:  result.Composite,
				Level:      result.Level,
				Layering:   result.Layering.Score,
				Encaps:     result.Encapsulation.Score,
				Abstract:   result.Abstraction.Score,
				Cycles:     result.Cycles.Score,
			})

			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
			}

			gate := minScore
			if gate == 0 {
				if cfg, err := config.New().Load(absPath); err == nil && cfg.MinScore != nil {
					gate = *cfg.MinScore
				}
			}
			if gate > 0 && result.Composite < gate {
				return fmt.Errorf("composite score %.2f is below minimum %.2f", result.Composite, gate)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Exit non-zero if the composite score is below this value")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the change cache entirely")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show the score history instead of the report")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
