package bot

import (
	"strings"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/j0lvera/tradebot/internal/relay"
)

var commands = map[string]relay.EventKind{
	"start": relay.StartCommand,
	"help":  relay.HelpCommand,
	"login": relay.LoginCommand,
}

// ParseUpdate converts a Telegram update into an inbound event. Updates that
// carry no text message are not events.
func ParseUpdate(update *models.Update) (relay.InboundEvent, bool) {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return relay.InboundEvent{}, false
	}

	msg := update.Message
	ev := relay.InboundEvent{
		ID:        uuid.New(),
		Kind:      relay.TextMessage,
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
	}

	if name, ok := commandName(msg.Text); ok {
		if kind, known := commands[name]; known {
			ev.Kind = kind
		}
	}

	return ev, true
}

// commandName extracts "start" from "/start", "/Start@TradeBot" or
// "/start arg".
func commandName(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}

	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return "", false
	}

	return strings.ToLower(name), true
}

// SendParams builds the sendMessage request for a reply.
func SendParams(out relay.OutboundMessage) *tbot.SendMessageParams {
	params := &tbot.SendMessageParams{
		ChatID: out.ChatID,
		Text:   out.Text,
	}
	if out.ReplyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID: out.ReplyTo,
		}
	}
	return params
}
