package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanq16/cratedl/internal/output"
	"github.com/tanq16/cratedl/internal/source"
	"github.com/tanq16/cratedl/internal/utils"
)

func newHarvestCmd() *cobra.Command {
	var bandcampUser string
	var label string
	var feeds bool
	var maxAge int

	cmd := &cobra.Command{
		Use:   "harvest [--user USER | --label LABEL | --feeds]",
		Short: "Print candidate URLs without downloading",
		Run: func(cmd *cobra.Command, args []string) {
			utils.InitLogger(debug)
			cfg := loadConfig()
			if maxAge > 0 {
				cfg.MaxAge = maxAge
			}
			userAgent := cfg.UserAgent
			if userAgent == "randomize" {
				userAgent = utils.GetRandomUserAgent()
			}
			client := utils.NewCrateHTTPClient(utils.HTTPClientConfig{
				Timeout:   time.Duration(cfg.Timeout),
				UserAgent: userAgent,
			})

			var urls []string
			var err error
			switch {
			case bandcampUser != "":
				urls, err = source.AlbumsOfWeek(client, bandcampUser, cfg.MaxAge)
			case label != "":
				urls, err = source.LabelAlbums(client, label, cfg.MaxAge)
			case feeds:
				urls, err = source.FeedUploads(client, cfg.FeedFile, cfg.MaxAge)
			default:
				urls, err = source.FromCache(cfg.CachePath, cfg.Pattern())
			}
			if err != nil {
				output.PrintError(fmt.Sprintf("Harvest failed: %v", err))
				os.Exit(1)
			}
			for _, url := range urls {
				fmt.Println(url)
			}
		},
	}

	cmd.Flags().StringVarP(&bandcampUser, "user", "u", "", "Bandcamp fan whose followed labels are scanned for recent releases")
	cmd.Flags().StringVar(&label, "label", "", "Single Bandcamp label to scan for recent releases")
	cmd.Flags().BoolVar(&feeds, "feeds", false, "Harvest recent uploads from yt_dl-marked feeds")
	cmd.Flags().IntVar(&maxAge, "max-age", 0, "Only keep releases newer than this many days")
	return cmd
}
