package bot

import (
	"context"
	"fmt"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// Dispatcher feeds Telegram updates through the relay and sends the replies.
type Dispatcher struct {
	handler Handler
	logger  *zerolog.Logger
}

func NewDispatcher(handler Handler, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		logger:  logger,
	}
}

// Dispatch handles one update. Failures are logged and never propagate.
func (d *Dispatcher) Dispatch(ctx context.Context, tg Sender, update *models.Update) {
	ev, ok := ParseUpdate(update)
	if !ok {
		d.logger.Debug().Msg("ignoring update without text message")
		return
	}

	d.logger.Info().
		Str("event_id", ev.ID.String()).
		Int64("chat_id", ev.ChatID).
		Str("kind", ev.Kind.String()).
		Msg("event received")

	out := d.handler.Handle(ctx, ev)

	if _, err := tg.SendMessage(ctx, SendParams(out)); err != nil {
		d.logger.Error().
			Err(err).
			Str("event_id", ev.ID.String()).
			Int64("chat_id", ev.ChatID).
			Msg("unable to send reply")
		return
	}

	d.logger.Debug().
		Str("event_id", ev.ID.String()).
		Int64("chat_id", ev.ChatID).
		Int("reply_to", out.ReplyTo).
		Msg("reply sent")
}

// Recover stops a panic in next from taking the process down. The update and
// the panic value are logged; the user gets no reply.
func Recover(logger *zerolog.Logger) tbot.Middleware {
	return func(next tbot.HandlerFunc) tbot.HandlerFunc {
		return func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Err(fmt.Errorf("panic: %v", rec)).
						Interface("update", update).
						Msg("update caused error")
				}
			}()
			next(ctx, tg, update)
		}
	}
}
