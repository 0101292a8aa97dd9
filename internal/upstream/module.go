package upstream

import (
	"net/http"

	"github.com/j0lvera/tradebot/internal/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Params for creating the upstream client
type Params struct {
	fx.In

	Config *config.Config
	Logger zerolog.Logger
}

// New creates the upstream client from configuration. A zero
// UPSTREAM_TIMEOUT leaves http.Client without a deadline.
func New(p Params) *Client {
	log := p.Logger.With().Str("component", "upstream").Logger()

	return NewClient(
		p.Config.AppURL,
		&log,
		WithPaths(p.Config.LoginPath, p.Config.DataPath),
		WithHTTPClient(&http.Client{Timeout: p.Config.UpstreamTimeout}),
	)
}

// Module provides the upstream client
func Module() fx.Option {
	return fx.Module(
		"upstream",
		fx.Provide(
			New,
		),
	)
}
