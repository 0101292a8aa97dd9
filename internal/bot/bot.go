package bot

import (
	"context"
	"fmt"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/j0lvera/tradebot/internal/config"
	"github.com/j0lvera/tradebot/internal/relay"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Config *config.Config
	Relay  *relay.Relay
	Logger zerolog.Logger
}

type Result struct {
	fx.Out

	Bot        *tbot.Bot
	Dispatcher *Dispatcher
}

func New(lc fx.Lifecycle, p Params) (Result, error) {
	log := p.Logger.With().Str("component", "bot").Logger()
	dispatcher := NewDispatcher(p.Relay, &log)

	opts := []tbot.Option{
		tbot.WithDefaultHandler(
			func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
				dispatcher.Dispatch(ctx, tg, update)
			},
		),
		tbot.WithMiddlewares(Recover(&log)),
		tbot.WithErrorsHandler(
			func(err error) {
				log.Error().Err(err).Msg("telegram error")
			},
		),
	}

	tg, err := tbot.New(p.Config.Token, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("unable to create telegram bot: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				if p.Config.WebhookEnabled() {
					log.Info().Msg("starting telegram bot in webhook mode...")
					if _, err := tg.SetWebhook(ctx, &tbot.SetWebhookParams{URL: p.Config.WebhookURL()}); err != nil {
						cancel()
						return fmt.Errorf("unable to set webhook: %w", err)
					}
					go tg.StartWebhook(runCtx)
					return nil
				}

				log.Info().Msg("starting telegram bot in polling mode...")
				if _, err := tg.DeleteWebhook(ctx, &tbot.DeleteWebhookParams{}); err != nil {
					log.Warn().Err(err).Msg("unable to delete webhook")
				}
				go tg.Start(runCtx)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				log.Info().Msg("stopping telegram bot...")
				cancel()
				return nil
			},
		},
	)

	return Result{
		Bot:        tg,
		Dispatcher: dispatcher,
	}, nil
}

func Module() fx.Option {
	return fx.Module(
		"bot",
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(bot *tbot.Bot) {},
		),
	)
}
