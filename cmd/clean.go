package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tanq16/cratedl/internal/output"
	"github.com/tanq16/cratedl/internal/utils"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove leftover partial downloads from the output directory",
		Run: func(cmd *cobra.Command, args []string) {
			utils.InitLogger(debug)
			cfg := loadConfig()
			if err := utils.Clean(cfg.OutputDir); err != nil {
				output.PrintError("Error cleaning up temporary files")
				return
			}
			output.PrintSuccess("Temporary files cleaned up")
		},
	}
}
