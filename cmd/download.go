package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tanq16/cratedl/internal/config"
	"github.com/tanq16/cratedl/internal/extract"
	"github.com/tanq16/cratedl/internal/output"
	"github.com/tanq16/cratedl/internal/pipeline"
	"github.com/tanq16/cratedl/internal/utils"
)

func newDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "download [URL...]",
		Short:   "Download the given album URLs directly",
		Aliases: []string{"dl"},
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			utils.InitLogger(debug)
			cfg := loadConfig()
			runPipeline(cfg, args)
		},
	}
}

// runPipeline drives the worker pool over urls and reports the summary.
// Per-item failures are printed but never change the exit code.
func runPipeline(cfg *config.Config, urls []string) {
	if err := cfg.EnsureOutputDir(); err != nil {
		output.PrintError(fmt.Sprintf("Failed to prepare output directory: %v", err))
		os.Exit(1)
	}
	resolver, err := extract.NewYtdlpResolver()
	if err != nil {
		output.PrintError(fmt.Sprintf("Failed to set up extraction backend: %v", err))
		os.Exit(1)
	}

	mgr := output.NewManager()
	if quiet {
		mgr.SetQuiet()
	}
	runner := &pipeline.Runner{
		Resolver:  resolver,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Display:   mgr,
	}
	mgr.StartDisplay()
	summary := runner.Run(context.Background(), urls)
	mgr.StopDisplay()
	printSummary(summary)
}

func printSummary(summary pipeline.Summary) {
	fmt.Println()
	output.PrintHeader(fmt.Sprintf("%d processed %s %d downloaded %s %d skipped %s %d failed",
		summary.Total(), output.StyleSymbols["bullet"],
		len(summary.Completed), output.StyleSymbols["bullet"],
		len(summary.Skipped), output.StyleSymbols["bullet"],
		len(summary.Failed)))
	if len(summary.Failed) > 0 {
		output.PrintWarning("Failed URLs:")
		for _, res := range summary.Failed {
			output.PrintDetail(fmt.Sprintf("  %s %s", output.StyleSymbols["fail"], res.URL))
		}
	}
}
