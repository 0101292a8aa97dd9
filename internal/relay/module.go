package relay

import (
	"github.com/j0lvera/tradebot/internal/config"
	"github.com/j0lvera/tradebot/internal/journal"
	"github.com/j0lvera/tradebot/internal/upstream"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Params for creating a Relay
type Params struct {
	fx.In

	Config   *config.Config
	Upstream *upstream.Client
	Journal  journal.Recorder
	Logger   zerolog.Logger
}

// New creates the relay from configuration
func New(p Params) *Relay {
	log := p.Logger.With().Str("component", "relay").Logger()

	return NewRelay(p.Upstream, p.Journal, p.Config.Messages, p.Config.HelpText(), &log)
}

// Module provides the Relay
func Module() fx.Option {
	return fx.Module(
		"relay",
		fx.Provide(
			New,
		),
	)
}
