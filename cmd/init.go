package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"botw/internal/config"
	"botw/internal/sheets"
	"botw/internal/structures"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize botw configuration",
	Long:  `Set up the Google Sheet, service-account credentials and Discord application for botw.`,
	Run: func(cmd *cobra.Command, args []string) {
		reader := bufio.NewReader(os.Stdin)
		prompt := func(label string) string {
			fmt.Print(label)
			v, _ := reader.ReadString('\n')
			return strings.TrimSpace(v)
		}

		sheetID, err := sheets.ExtractSheetID(prompt("Enter Google Sheet URL or ID: "))
		if err != nil {
			fatalf("Invalid Sheet URL/ID: %v", err)
		}

		absPath, err := filepath.Abs(prompt("Enter path to service account credentials.json: "))
		if err != nil {
			fatalf("Invalid path: %v", err)
		}
		if err := sheets.CheckCredentials(absPath); err != nil {
			fatalf("Invalid credentials: %v", err)
		}

		sheetName := prompt(fmt.Sprintf("Enter Sheet Name (default: %s): ", config.DefaultSheetName))
		if sheetName == "" {
			sheetName = config.DefaultSheetName
		}

		token := prompt("Enter Discord bot token: ")
		appID := prompt("Enter Discord application ID: ")
		guildID := prompt("Enter guild ID for guild-only commands (press Enter for global): ")

		cfg := structures.Config{
			SheetID:         sheetID,
			SheetName:       sheetName,
			CredentialsPath: absPath,
			DiscordToken:    token,
			ApplicationID:   appID,
			GuildID:         guildID,
		}
		if err := config.Validate(cfg, config.SpreadsheetID, config.DiscordToken, config.CredentialsPath, config.ApplicationID); err != nil {
			fatalf("%v", err)
		}

		if err := config.Save(cfg); err != nil {
			fatalf("Failed to save config: %v", err)
		}

		if path, err := config.Path(); err == nil {
			fmt.Printf("Saved config to %s\n", path)
		}
		fmt.Println("You can now run: botw run")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
