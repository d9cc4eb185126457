package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeforge/codeforge/internal/config"
	"github.com/codeforge/codeforge/internal/consensus"
	"github.com/codeforge/codeforge/internal/diff"
	"github.com/codeforge/codeforge/internal/github"
	"github.com/codeforge/codeforge/internal/output"
	"github.com/codeforge/codeforge/internal/providers"
	"github.com/codeforge/codeforge/internal/review"
)

// Shared review flags
var (
	flagConfig      string
	flagReviewers   string
	flagProvider    string
	flagModel       string
	flagFormat      string
	flagOut         string
	flagMaxFindings int
	flagThreshold   string
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default: .codeforge.yaml)")
	cmd.Flags().StringVar(&flagReviewers, "reviewers", "", "Reviewers to run (comma-separated: security, correctness, performance, style)")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (terminal, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flagMaxFindings, "max-findings", 0, "Maximum findings per reviewer")
	cmd.Flags().StringVar(&flagThreshold, "severity-threshold", "", "Minimum severity to report (critical, high, medium, low, info)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagReviewers != "" {
		m["reviewers"] = flagReviewers
	}
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagMaxFindings > 0 {
		m["max-findings"] = fmt.Sprintf("%d", flagMaxFindings)
	}
	if flagThreshold != "" {
		m["severity-threshold"] = flagThreshold
	}
	return m
}

// buildReviewers turns configured reviewer names into Reviewer values backed
// by one shared provider client.
func buildReviewers(cfg *config.Config) ([]review.Reviewer, error) {
	client, err := providers.New(cfg.Provider, cfg.Model, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	reviewers := make([]review.Reviewer, 0, len(cfg.Reviewers))
	for _, name := range cfg.Reviewers {
		kind, err := review.ParseKind(name)
		if err != nil {
			return nil, err
		}
		reviewers = append(reviewers, review.NewReviewer(kind, client))
	}
	return reviewers, nil
}

func runConsensus(ctx context.Context, cfg *config.Config, prctx review.PRContext) (*output.Report, error) {
	start := time.Now()

	reviewers, err := buildReviewers(cfg)
	if err != nil {
		return nil, err
	}

	runner := review.Runner{
		Reviewers:         reviewers,
		MaxFindings:       cfg.MaxFindings,
		SeverityThreshold: review.Severity(cfg.SeverityThreshold),
		Warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}

	llmStart := time.Now()
	results := runner.Run(ctx, prctx)
	llmMs := time.Since(llmStart).Milliseconds()

	result := consensus.Aggregate(results)

	report := output.NewReport(version, prctx.Repo, prctx.Number, result)
	report.Timing = output.Timing{LLMMs: llmMs, TotalMs: time.Since(start).Milliseconds()}
	return report, nil
}

func finishReview(report *output.Report, cfg *config.Config) {
	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if report.Consensus.Decision == review.DecisionRequestChanges {
		exitCode = ExitFindings
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if providers.IsAuthError(err) {
		exitCode = ExitAuthError
		return
	}
	exitCode = ExitRuntimeError
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review code changes",
	Long:  "Review code changes with the configured reviewer panel. Use subcommands to specify what to review.",
}

var (
	flagRepo   string
	flagDryRun bool
)

var reviewPRCmd = &cobra.Command{
	Use:   "pr <number>",
	Short: "Review a GitHub pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var number int
		if _, err := fmt.Sscanf(args[0], "%d", &number); err != nil || number <= 0 {
			return fmt.Errorf("invalid PR number: %s", args[0])
		}

		cfg, err := config.Load(flagConfig, buildOverrides())
		if err != nil {
			return err
		}

		repo := flagRepo
		if repo == "" {
			repo, err = github.DetectRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v (use --repo owner/repo)\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
		}

		gh, err := github.NewClient(cfg.GitHubToken)
		if err != nil {
			fail(err)
			return nil
		}

		ctx := context.Background()
		prctx, err := gh.GetPR(ctx, repo, number)
		if err != nil {
			fail(err)
			return nil
		}

		report, err := runConsensus(ctx, cfg, prctx)
		if err != nil {
			fail(err)
			return nil
		}

		if !flagDryRun {
			var body bytes.Buffer
			if err := (&output.MarkdownWriter{}).Write(&body, report); err != nil {
				fail(err)
				return nil
			}
			if err := gh.PostReview(ctx, repo, number, body.String(), report.Consensus.Decision); err != nil {
				fail(err)
				return nil
			}
		}

		finishReview(report, cfg)
		return nil
	},
}

var reviewDiffCmd = &cobra.Command{
	Use:   "diff [file]",
	Short: "Review a unified diff from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig, buildOverrides())
		if err != nil {
			return err
		}

		var data []byte
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading diff: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		prctx, err := review.NewPRContext("local/diff", 0)
		if err != nil {
			fail(err)
			return nil
		}
		prctx.Title = "Local diff review"
		prctx.Diff = string(data)
		prctx.FilesChanged = diff.ExtractFiles(prctx.Diff)

		report, err := runConsensus(context.Background(), cfg, prctx)
		if err != nil {
			fail(err)
			return nil
		}

		finishReview(report, cfg)
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewPRCmd)
	reviewCmd.AddCommand(reviewDiffCmd)

	for _, cmd := range []*cobra.Command{reviewPRCmd, reviewDiffCmd} {
		addReviewFlags(cmd)
	}

	reviewPRCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository in owner/repo form (default: detected from git remote)")
	reviewPRCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Run the review without posting to GitHub")
}
