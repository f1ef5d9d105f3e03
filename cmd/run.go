package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"botw/internal/bot"
	"botw/internal/config"
	"botw/internal/metrics"
	"botw/internal/sheets"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve /botw and !botw",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(config.SpreadsheetID, config.DiscordToken, config.CredentialsPath, config.ApplicationID)

		store, err := sheets.NewService(context.Background(), cfg)
		if err != nil {
			fatalf("failed to initialize Google Sheets client: %v", err)
		}

		dg, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			fatalf("failed to create Discord session: %v", err)
		}
		dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		b := bot.New(cfg, store, logger, m)

		dg.AddHandler(b.OnReady)
		dg.AddHandler(b.OnInteractionCreate)
		dg.AddHandler(b.OnMessageCreate)

		// Registration failures are logged by Register; the bot still connects.
		_ = bot.Register(dg, cfg.ApplicationID, cfg.GuildID, logger, m)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.MetricsAddress != "" {
			srv := &http.Server{Addr: cfg.MetricsAddress, Handler: metrics.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
			go func() {
				logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddress))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server stopped", zap.Error(err))
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		if err := dg.Open(); err != nil {
			fatalf("failed to open Discord connection: %v", err)
		}
		defer dg.Close()

		logger.Info("bot is running, press Ctrl+C to exit")
		<-ctx.Done()
		logger.Info("shutting down")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
