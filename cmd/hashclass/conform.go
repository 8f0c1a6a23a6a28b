package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/hashclass/conformance"
	"github.com/mgomes/hashclass/hashclass"
)

var (
	passStyle    = lipgloss.NewStyle().Foreground(successColor)
	failStyle    = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	skipStyle    = lipgloss.NewStyle().Foreground(highlightColor)
	suiteStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

func conformCommand(args []string) error {
	fs := flag.NewFlagSet("conform", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	repoURL := fs.String("repo", "", "git repository holding the suites")
	revision := fs.String("rev", "", "revision to check out (default HEAD)")
	cacheDir := fs.String("cache", "", "checkout cache directory")
	verbose := fs.Bool("v", false, "list passing cases")
	engineOpts := registerEngineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("hashclass conform: suite path required")
	}
	ctx := context.Background()

	target := remaining[0]
	if *repoURL != "" {
		cache := *cacheDir
		if cache == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache directory: %w", err)
			}
			cache = filepath.Join(base, "hashclass", "suites")
		}
		dir, err := conformance.FetchSuite(ctx, conformance.FetchOptions{
			URL:      *repoURL,
			Revision: *revision,
			CacheDir: cache,
		})
		if err != nil {
			return err
		}
		target = filepath.Join(dir, filepath.FromSlash(target))
	}

	suites, err := loadSuites(target)
	if err != nil {
		return err
	}

	engine, err := hashclass.NewEngine(hashclass.Config{
		StepQuota:      *engineOpts.steps,
		RecursionLimit: *engineOpts.recursion,
	})
	if err != nil {
		return err
	}
	runner := conformance.NewRunner(engine)
	reports := make([]conformance.Report, 0, len(suites))
	for _, suite := range suites {
		reports = append(reports, runner.Run(ctx, suite))
	}

	fmt.Print(renderReports(reports, *verbose))

	failed, total := 0, 0
	for _, report := range reports {
		failed += report.Failed()
		total += len(report.Results)
	}
	if failed > 0 {
		return fmt.Errorf("conformance failed: %d of %d case(s)", failed, total)
	}
	return nil
}

func loadSuites(target string) ([]*conformance.Suite, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("access suites: %w", err)
	}
	if info.IsDir() {
		return conformance.LoadSuites(target)
	}
	suite, err := conformance.LoadSuite(target)
	if err != nil {
		return nil, err
	}
	return []*conformance.Suite{suite}, nil
}

func renderReports(reports []conformance.Report, verbose bool) string {
	var b strings.Builder
	passed, failed, skipped := 0, 0, 0
	for _, report := range reports {
		passed += report.Passed()
		failed += report.Failed()
		skipped += report.Skipped()

		b.WriteString(suiteStyle.Render(report.Suite))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", report.Passed(), len(report.Results))))
		b.WriteString("\n")
		for _, res := range report.Results {
			switch {
			case res.Skipped:
				if verbose {
					b.WriteString("  " + skipStyle.Render("- "+res.Name) + mutedStyle.Render("  "+res.Detail) + "\n")
				}
			case res.Passed:
				if verbose {
					b.WriteString("  " + passStyle.Render("✓ "+res.Name) + "\n")
				}
			default:
				b.WriteString("  " + failStyle.Render("✗ "+res.Name) + "\n")
				b.WriteString("    " + errorStyle.Render(res.Detail) + "\n")
			}
		}
	}

	summary := passStyle.Render(fmt.Sprintf("%d passed", passed))
	if failed > 0 {
		summary += "  " + failStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	if skipped > 0 {
		summary += "  " + skipStyle.Render(fmt.Sprintf("%d skipped", skipped))
	}
	b.WriteString(summaryStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}
