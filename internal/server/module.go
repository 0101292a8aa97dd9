package server

import (
	tbot "github.com/go-telegram/bot"
	"github.com/j0lvera/tradebot/internal/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Config *config.Config
	Bot    *tbot.Bot
	Logger zerolog.Logger
}

// Register starts the webhook listener when the bot runs in webhook mode.
// In polling mode nothing listens.
func Register(lc fx.Lifecycle, p Params) {
	log := p.Logger.With().Str("component", "server").Logger()

	if !p.Config.WebhookEnabled() {
		log.Info().Msg("APP_NAME not set, webhook server disabled")
		return
	}

	router := NewRouter(p.Config.Token, p.Bot.WebhookHandler(), &log)
	srv := New(p.Config.Port, router, &log)

	lc.Append(
		fx.StartStopHook(
			srv.Start,
			srv.Shutdown,
		),
	)
}

func Module() fx.Option {
	return fx.Module(
		"server",
		fx.Invoke(Register),
	)
}
