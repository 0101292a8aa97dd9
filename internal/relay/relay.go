package relay

import (
	"context"
	"net/http"

	"github.com/j0lvera/tradebot/internal/config"
	"github.com/j0lvera/tradebot/internal/journal"
	"github.com/j0lvera/tradebot/internal/upstream"
	"github.com/rs/zerolog"
)

// Relay maps inbound chat events to replies. It holds no per-event state and
// is safe for concurrent use.
type Relay struct {
	upstream Upstream
	journal  journal.Recorder
	messages config.Messages
	helpText string
	logger   *zerolog.Logger
}

// NewRelay creates a relay. messages supplies the fixed reply texts and
// helpText the full help reply.
func NewRelay(
	up Upstream,
	rec journal.Recorder,
	messages config.Messages,
	helpText string,
	logger *zerolog.Logger,
) *Relay {
	if rec == nil {
		rec = journal.Nop{}
	}
	return &Relay{
		upstream: up,
		journal:  rec,
		messages: messages,
		helpText: helpText,
		logger:   logger,
	}
}

// Handle dispatches ev by kind. It always returns a reply.
func (r *Relay) Handle(ctx context.Context, ev InboundEvent) OutboundMessage {
	switch ev.Kind {
	case StartCommand:
		return r.HandleStart(ev)
	case HelpCommand:
		return r.HandleHelp(ev)
	case LoginCommand:
		return r.HandleLogin(ctx, ev)
	default:
		return r.HandleTextMessage(ctx, ev)
	}
}

// HandleStart returns the greeting.
func (r *Relay) HandleStart(ev InboundEvent) OutboundMessage {
	return OutboundMessage{ChatID: ev.ChatID, Text: r.messages.Start}
}

// HandleHelp returns the pointer to the stock name list.
func (r *Relay) HandleHelp(ev InboundEvent) OutboundMessage {
	return OutboundMessage{ChatID: ev.ChatID, Text: r.helpText}
}

// HandleLogin replies with the login link served by the upstream, or the
// login fallback text when it cannot be fetched.
func (r *Relay) HandleLogin(ctx context.Context, ev InboundEvent) OutboundMessage {
	out := OutboundMessage{ChatID: ev.ChatID, Text: r.messages.LoginMissing}

	link, err := r.upstream.AuthURL(ctx)
	r.record(ctx, ev, journal.KindLogin, "", err)
	if err != nil {
		return out
	}

	out.Text = link
	return out
}

// HandleTextMessage treats the message text as a stock symbol and replies,
// threaded to the message, with the first matching quote.
func (r *Relay) HandleTextMessage(ctx context.Context, ev InboundEvent) OutboundMessage {
	out := OutboundMessage{
		ChatID:  ev.ChatID,
		Text:    r.messages.StockMissing,
		ReplyTo: ev.MessageID,
	}

	quote, err := r.upstream.Quote(ctx, ev.Text)
	r.record(ctx, ev, journal.KindQuote, ev.Text, err)
	if err != nil {
		return out
	}

	out.Text = FormatQuote(quote)
	return out
}

// record logs the classified outcome of a lookup and appends it to the
// journal. Every failure kind reaches the user as the same fallback text.
func (r *Relay) record(ctx context.Context, ev InboundEvent, kind, symbol string, err error) {
	outcome := journal.OutcomeOK
	status := http.StatusOK
	if err != nil {
		outcome = string(upstream.KindOf(err))
		if outcome == "" {
			outcome = string(upstream.KindTransport)
		}
		status = upstream.StatusOf(err)

		r.logger.Warn().
			Err(err).
			Str("event_id", ev.ID.String()).
			Int64("chat_id", ev.ChatID).
			Str("kind", kind).
			Str("symbol", symbol).
			Str("outcome", outcome).
			Int("status", status).
			Msg("upstream lookup failed")
	} else {
		r.logger.Info().
			Str("event_id", ev.ID.String()).
			Int64("chat_id", ev.ChatID).
			Str("kind", kind).
			Str("symbol", symbol).
			Msg("upstream lookup succeeded")
	}

	entry := journal.Entry{
		ID:         ev.ID,
		ChatID:     ev.ChatID,
		Kind:       kind,
		Symbol:     symbol,
		Outcome:    outcome,
		HTTPStatus: status,
	}
	if jerr := r.journal.Record(ctx, entry); jerr != nil {
		r.logger.Error().Err(jerr).Str("event_id", ev.ID.String()).Msg("unable to record lookup")
	}
}
