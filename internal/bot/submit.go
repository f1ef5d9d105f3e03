package bot

import (
	"context"

	"botw/internal/metrics"
	"botw/internal/structures"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) submit(ctx context.Context, log *zap.Logger, user string, opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	if b.limiter != nil && !b.limiter.Allow(user) {
		log.Warn("submission rate limited", zap.String("user", user))
		b.metrics.Submission(metrics.ResultLimited)
		return SubmitLimited
	}

	sub := structures.Submission{
		Submitter:   user,
		Team:        stringOption(opts, "team"),
		Boss:        stringOption(opts, "boss"),
		Drop:        stringOption(opts, "drop"),
		SubmittedAt: b.now().UTC(),
	}

	if err := b.store.AppendSubmission(ctx, sub); err != nil {
		log.Error("error adding data to sheet",
			zap.String("user", sub.Submitter),
			zap.String("team", sub.Team),
			zap.String("boss", sub.Boss),
			zap.String("drop", sub.Drop),
			zap.Error(err))
		b.metrics.Submission(metrics.ResultError)
		return SubmitFailed
	}

	log.Info("drop submitted",
		zap.String("user", sub.Submitter),
		zap.String("team", sub.Team),
		zap.String("boss", sub.Boss))
	b.metrics.Submission(metrics.ResultOK)
	return SubmitOK
}

func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue()
		}
	}
	return ""
}
