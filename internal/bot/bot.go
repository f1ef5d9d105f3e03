// Package bot wires the BOTW slash command and the !botw trigger to the
// spreadsheet store.
package bot

import (
	"context"
	"time"

	"botw/internal/metrics"
	"botw/internal/structures"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CommandName    = "botw"
	RankingTrigger = "!botw"

	SubmitOK      = "Drop sent for approval!"
	SubmitFailed  = "Error 6969 Contact Jeffrie - 3rd Age."
	SubmitLimited = "Slow down! Try again in a minute."
	RankingFailed = "Error 9696 Contact Jeffrie - 3rd Age"
)

// Store is the spreadsheet backend.
type Store interface {
	AppendSubmission(ctx context.Context, sub structures.Submission) error
	ReadRankings(ctx context.Context) (*structures.RankingSnapshot, error)
}

// Responder is the slice of *discordgo.Session the event handlers reply through.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Bot struct {
	store   Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	limiter *UserLimiter
	title   string
	now     func() time.Time
}

// New builds a Bot. A zero SubmitRatePerMinute leaves submissions unlimited.
func New(cfg structures.Config, store Store, logger *zap.Logger, m *metrics.Metrics) *Bot {
	b := &Bot{
		store:   store,
		logger:  logger,
		metrics: m,
		title:   cfg.RankingTitle,
		now:     time.Now,
	}
	if cfg.SubmitRatePerMinute > 0 {
		b.limiter = NewUserLimiter(cfg.SubmitRatePerMinute)
	}
	return b
}

func (b *Bot) OnReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
}

func (b *Bot) OnInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.HandleInteraction(context.Background(), s, i)
}

func (b *Bot) OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.HandleMessage(context.Background(), s, m)
}

// HandleInteraction processes /botw invocations and ignores everything else.
func (b *Bot) HandleInteraction(ctx context.Context, s Responder, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != CommandName {
		return
	}

	log := b.logger.With(zap.String("request_id", uuid.NewString()), zap.String("command", data.Name))
	reply := b.submit(ctx, log, submitterName(i.Interaction), data.Options)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: reply},
	})
	if err != nil {
		log.Error("failed to reply to interaction", zap.Error(err))
	}
}

// HandleMessage posts the ranking table when a user sends exactly !botw.
func (b *Bot) HandleMessage(ctx context.Context, s Responder, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Content != RankingTrigger {
		return
	}

	log := b.logger.With(zap.String("request_id", uuid.NewString()), zap.String("channel", m.ChannelID))
	reply := b.rankings(ctx, log)

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		log.Error("failed to send rankings", zap.Error(err))
	}
}

func submitterName(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}
