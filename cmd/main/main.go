package main

import (
	"github.com/j0lvera/tradebot/internal/bot"
	"github.com/j0lvera/tradebot/internal/config"
	"github.com/j0lvera/tradebot/internal/db"
	"github.com/j0lvera/tradebot/internal/journal"
	"github.com/j0lvera/tradebot/internal/log"
	"github.com/j0lvera/tradebot/internal/relay"
	"github.com/j0lvera/tradebot/internal/server"
	"github.com/j0lvera/tradebot/internal/upstream"
	"go.uber.org/fx"
)

func main() {

	fx.New(
		config.Module(),
		log.Module(),
		db.Module(),
		journal.Module(),
		upstream.Module(),
		relay.Module(),
		bot.Module(),
		server.Module(),
	).Run()
}
