package journal

import (
	"context"

	"github.com/j0lvera/tradebot/internal/db"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	DBClient *db.Client
	Logger   zerolog.Logger
}

type Result struct {
	fx.Out

	Recorder Recorder
}

// New returns a Postgres journal when a database is configured, Nop otherwise.
func New(lc fx.Lifecycle, p Params) Result {
	if !p.DBClient.Enabled() {
		return Result{Recorder: Nop{}}
	}

	j := NewPgJournal(p.DBClient.Pool)

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				p.Logger.Info().Msg("preparing lookup journal")
				return j.Migrate(ctx)
			},
		},
	)

	return Result{Recorder: j}
}

func Module() fx.Option {
	return fx.Module(
		"journal",
		fx.Provide(New),
	)
}
