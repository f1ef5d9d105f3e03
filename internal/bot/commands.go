package bot

import (
	"botw/internal/metrics"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// CommandRegistrar is the slice of *discordgo.Session used to publish slash commands.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Commands is the full command set owned by the application.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Send drop for approval",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "team",
					Description: "Team",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "boss",
					Description: "Boss",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "drop",
					Description: "Drop",
					Required:    true,
				},
			},
		},
	}
}

// Register replaces the application's command set. An empty guildID registers
// globally.
func Register(s CommandRegistrar, appID, guildID string, logger *zap.Logger, m *metrics.Metrics) error {
	log := logger.With(zap.String("application_id", appID), zap.String("guild_id", guildID))
	log.Info("started refreshing application commands")

	created, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		log.Error("error registering commands", zap.Error(err))
		m.Registration(metrics.ResultError)
		return err
	}

	log.Info("successfully reloaded application commands", zap.Int("count", len(created)))
	m.Registration(metrics.ResultOK)
	return nil
}
