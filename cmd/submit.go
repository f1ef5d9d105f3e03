package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"botw/internal/config"
	"botw/internal/sheets"
	"botw/internal/structures"

	"github.com/spf13/cobra"
)

var submitUser string

var submitCmd = &cobra.Command{
	Use:   "submit [team] [boss] [drop]",
	Short: "Append a drop for approval on behalf of a user",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		for i, name := range []string{"team", "boss", "drop"} {
			if strings.TrimSpace(args[i]) == "" {
				fatalf("%s cannot be empty", name)
			}
		}

		cfg := loadConfig(config.SpreadsheetID, config.CredentialsPath)

		ctx := context.Background()
		service, err := sheets.NewService(ctx, cfg)
		if err != nil {
			fatalf("failed to initialize Google Sheets client: %v", err)
		}

		sub := structures.Submission{
			Submitter:   submitUser,
			Team:        args[0],
			Boss:        args[1],
			Drop:        args[2],
			SubmittedAt: time.Now().UTC(),
		}
		if err := service.AppendSubmission(ctx, sub); err != nil {
			fatalf("failed to submit drop: %v", err)
		}
		fmt.Printf("Drop sent for approval for %s: %s / %s / %s\n", sub.Submitter, sub.Team, sub.Boss, sub.Drop)
	},
}

func init() {
	submitCmd.Flags().StringVarP(&submitUser, "user", "u", "", "Username recorded as the submitter")
	_ = submitCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(submitCmd)
}
