package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanq16/cratedl/internal/config"
	"github.com/tanq16/cratedl/internal/output"
	"github.com/tanq16/cratedl/internal/source"
	"github.com/tanq16/cratedl/internal/utils"
)

var (
	configPath  string
	cachePath   string
	urlListFile string
	outputDir   string
	workers     int
	debug       bool
	quiet       bool
)

var CratedlVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "cratedl",
	Short:   "Cratedl harvests album URLs from a feed reader cache and downloads them concurrently",
	Version: CratedlVersion,
	Run: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
		cfg := loadConfig()

		urlFile := urlListFile
		if urlFile == "" {
			urlFile = cfg.URLFile
		}
		var urls []string
		var err error
		if urlFile != "" {
			urls, err = source.FromFile(urlFile)
		} else {
			urls, err = source.FromCache(cfg.CachePath, cfg.Pattern())
		}
		if err != nil {
			output.PrintError(fmt.Sprintf("Failed to read URL store: %v", err))
			os.Exit(1)
		}
		if len(urls) == 0 {
			output.PrintInfo("No candidate URLs found")
			return
		}
		log.Debug().Str("op", "cmd/root").Msgf("Harvested %d candidate URLs", len(urls))
		runPipeline(cfg, urls)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/cratedl/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory for downloaded files")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent download workers (keep small to avoid throttling)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Disable the live status display")
	rootCmd.Flags().StringVar(&cachePath, "cache", "", "Feed reader sqlite cache path")
	rootCmd.Flags().StringVarP(&urlListFile, "urllist", "l", "", "Plain text file with one URL per line (skips the cache)")

	rootCmd.AddCommand(newHarvestCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newCleanCmd())
}

// loadConfig resolves the config file and folds in flag overrides.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		output.PrintError(fmt.Sprintf("Failed to load config: %v", err))
		os.Exit(1)
	}
	if cachePath != "" {
		cfg.CachePath = cachePath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg
}
