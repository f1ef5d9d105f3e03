package cmd

import (
	"context"
	"fmt"

	"botw/internal/config"
	"botw/internal/rankings"
	"botw/internal/sheets"

	"github.com/spf13/cobra"
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Print the current rankings exactly as !botw would post them",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(config.SpreadsheetID, config.CredentialsPath)

		ctx := context.Background()
		service, err := sheets.NewService(ctx, cfg)
		if err != nil {
			fatalf("failed to initialize Google Sheets client: %v", err)
		}

		snap, err := service.ReadRankings(ctx)
		if err != nil {
			fatalf("failed to read rankings: %v", err)
		}
		fmt.Println(rankings.Render(cfg.RankingTitle, snap))
	},
}

func init() {
	rootCmd.AddCommand(rankingsCmd)
}
