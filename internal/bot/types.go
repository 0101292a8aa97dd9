package bot

import (
	"context"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/j0lvera/tradebot/internal/relay"
)

// Sender delivers a message to Telegram. *tbot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *tbot.SendMessageParams) (*models.Message, error)
}

// Handler turns an inbound event into its reply. *relay.Relay satisfies it.
type Handler interface {
	Handle(ctx context.Context, ev relay.InboundEvent) relay.OutboundMessage
}
