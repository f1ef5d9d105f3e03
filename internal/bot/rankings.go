package bot

import (
	"context"

	"botw/internal/metrics"
	"botw/internal/rankings"

	"go.uber.org/zap"
)

func (b *Bot) rankings(ctx context.Context, log *zap.Logger) string {
	snap, err := b.store.ReadRankings(ctx)
	if err != nil {
		log.Error("error reading from google sheets", zap.Error(err))
		b.metrics.Ranking(metrics.ResultError)
		return RankingFailed
	}

	if snap.Empty() {
		b.metrics.Ranking(metrics.ResultEmpty)
	} else {
		b.metrics.Ranking(metrics.ResultOK)
	}
	return rankings.Render(b.title, snap)
}
