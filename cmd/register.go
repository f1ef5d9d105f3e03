package cmd

import (
	"fmt"

	"botw/internal/bot"
	"botw/internal/config"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Overwrite the application's slash commands and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(config.DiscordToken, config.ApplicationID)

		dg, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			fatalf("failed to create Discord session: %v", err)
		}

		if err := bot.Register(dg, cfg.ApplicationID, cfg.GuildID, logger, nil); err != nil {
			fatalf("failed to register commands: %v", err)
		}
		fmt.Println("Registered /botw.")
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
