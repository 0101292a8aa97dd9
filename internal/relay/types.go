package relay

import (
	"context"

	"github.com/google/uuid"
	"github.com/j0lvera/tradebot/internal/upstream"
)

// EventKind discriminates inbound events.
type EventKind int

const (
	StartCommand EventKind = iota
	HelpCommand
	LoginCommand
	TextMessage
)

func (k EventKind) String() string {
	switch k {
	case StartCommand:
		return "start"
	case HelpCommand:
		return "help"
	case LoginCommand:
		return "login"
	case TextMessage:
		return "text"
	}
	return "unknown"
}

// InboundEvent is a command or text message received from the chat.
type InboundEvent struct {
	ID        uuid.UUID // correlation id for logs and the journal
	Kind      EventKind
	ChatID    int64
	MessageID int
	Text      string
}

// OutboundMessage is the reply to one InboundEvent. ReplyTo is zero when the
// reply is not threaded.
type OutboundMessage struct {
	ChatID  int64
	Text    string
	ReplyTo int
}

// Upstream is the quote service as seen by the relay.
type Upstream interface {
	AuthURL(ctx context.Context) (string, error)
	Quote(ctx context.Context, symbol string) (upstream.Quote, error)
}
