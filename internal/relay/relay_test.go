package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/j0lvera/tradebot/internal/config"
	"github.com/j0lvera/tradebot/internal/journal"
	"github.com/j0lvera/tradebot/internal/upstream"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acmeReply = "Name: ACME\n" +
	"LTP: ₹100\n" +
	"Change: ₹1.5\n" +
	"Change Percentage: 0.5%\n" +
	"Previous Close: ₹98.5\n" +
	"Open: ₹100\n" +
	"High: ₹102\n" +
	"Low: ₹97"

type fakeUpstream struct {
	authCalls  int
	quoteCalls []string
}

func (f *fakeUpstream) AuthURL(context.Context) (string, error) {
	f.authCalls++
	return "", &upstream.Error{Kind: upstream.KindTransport}
}

func (f *fakeUpstream) Quote(_ context.Context, symbol string) (upstream.Quote, error) {
	f.quoteCalls = append(f.quoteCalls, symbol)
	return upstream.Quote{}, &upstream.Error{Kind: upstream.KindEmpty}
}

type memJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (m *memJournal) Record(_ context.Context, e journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

// newServedRelay wires a relay to a real upstream client talking to handler.
func newServedRelay(t *testing.T, handler http.HandlerFunc) (*Relay, *memJournal) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	client := upstream.NewClient(server.URL+"/", &logger)
	rec := &memJournal{}

	return NewRelay(client, rec, config.DefaultMessages, config.DefaultMessages.Help, &logger), rec
}

func textEvent(chatID int64, messageID int, text string) InboundEvent {
	return InboundEvent{
		ID:        uuid.New(),
		Kind:      TextMessage,
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}
}

func TestHandleStart_NeverCallsUpstream(t *testing.T) {
	up := &fakeUpstream{}
	logger := zerolog.Nop()
	r := NewRelay(up, nil, config.DefaultMessages, config.DefaultMessages.Help, &logger)

	out := r.Handle(context.Background(), InboundEvent{Kind: StartCommand, ChatID: 7, MessageID: 3})

	assert.Equal(t, OutboundMessage{ChatID: 7, Text: "TradeBot has started. Enter stock name to get quote."}, out)
	assert.Zero(t, up.authCalls)
	assert.Empty(t, up.quoteCalls)
}

func TestHandleHelp_NeverCallsUpstream(t *testing.T) {
	up := &fakeUpstream{}
	logger := zerolog.Nop()
	r := NewRelay(up, nil, config.DefaultMessages, "Click below link for stock names.\nhttps://example.com/list", &logger)

	out := r.Handle(context.Background(), InboundEvent{Kind: HelpCommand, ChatID: 7, MessageID: 3})

	assert.Equal(t, OutboundMessage{ChatID: 7, Text: "Click below link for stock names.\nhttps://example.com/list"}, out)
	assert.Zero(t, up.authCalls)
	assert.Empty(t, up.quoteCalls)
}

func TestHandleLogin_Success(t *testing.T) {
	r, rec := newServedRelay(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/get_authcode_url", req.URL.Path)
		w.Write([]byte("https://example.com/auth"))
	})

	out := r.Handle(context.Background(), InboundEvent{Kind: LoginCommand, ChatID: 11, MessageID: 5})

	assert.Equal(t, OutboundMessage{ChatID: 11, Text: "https://example.com/auth"}, out)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, journal.KindLogin, rec.entries[0].Kind)
	assert.Equal(t, journal.OutcomeOK, rec.entries[0].Outcome)
}

func TestHandleLogin_ServerError(t *testing.T) {
	r, rec := newServedRelay(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("https://example.com/auth"))
	})

	out := r.Handle(context.Background(), InboundEvent{Kind: LoginCommand, ChatID: 11, MessageID: 5})

	assert.Equal(t, OutboundMessage{ChatID: 11, Text: "No url found"}, out)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, string(upstream.KindStatus), rec.entries[0].Outcome)
	assert.Equal(t, http.StatusInternalServerError, rec.entries[0].HTTPStatus)
}

func TestHandleLogin_Unreachable(t *testing.T) {
	logger := zerolog.Nop()
	client := upstream.NewClient("http://127.0.0.1:1/", &logger)
	r := NewRelay(client, nil, config.DefaultMessages, config.DefaultMessages.Help, &logger)

	out := r.HandleLogin(context.Background(), InboundEvent{Kind: LoginCommand, ChatID: 11})

	assert.Equal(t, "No url found", out.Text)
	assert.Zero(t, out.ReplyTo)
}

func TestHandleTextMessage_Quote(t *testing.T) {
	var gotStock string
	r, rec := newServedRelay(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/get_data", req.URL.Path)
		gotStock = req.URL.Query().Get("stock")
		w.Write([]byte(`{"data":[{"n":"ACME","v":{"ch":1.5,"chp":0.5,"open_price":100,"prev_close_price":98.5,"high_price":102,"low_price":97,"lp":100}}]}`))
	})

	ev := textEvent(21, 99, "ACME")
	out := r.Handle(context.Background(), ev)

	assert.Equal(t, "ACME", gotStock)
	assert.Equal(t, OutboundMessage{ChatID: 21, Text: acmeReply, ReplyTo: 99}, out)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, ev.ID, rec.entries[0].ID)
	assert.Equal(t, "ACME", rec.entries[0].Symbol)
	assert.Equal(t, journal.OutcomeOK, rec.entries[0].Outcome)
	assert.Equal(t, http.StatusOK, rec.entries[0].HTTPStatus)
}

func TestHandleTextMessage_FirstRecordWins(t *testing.T) {
	r, _ := newServedRelay(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"data":[
			{"n":"ACME","v":{"ch":1.5,"chp":0.5,"open_price":100,"prev_close_price":98.5,"high_price":102,"low_price":97,"lp":100}},
			{"n":"ACME LTD","v":{"ch":0,"chp":0,"open_price":1,"prev_close_price":1,"high_price":1,"low_price":1,"lp":1}}
		]}`))
	})

	out := r.Handle(context.Background(), textEvent(21, 99, "ACME"))
	assert.Equal(t, acmeReply, out.Text)
}

func TestHandleTextMessage_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		outcome upstream.Kind
	}{
		{"empty data", http.StatusOK, `{"data": []}`, upstream.KindEmpty},
		{"absent data", http.StatusOK, `{"status":"ok"}`, upstream.KindEmpty},
		{"server error", http.StatusInternalServerError, `{"data":[]}`, upstream.KindStatus},
		{"bad gateway", http.StatusBadGateway, ``, upstream.KindStatus},
		{"malformed json", http.StatusOK, `<html>oops</html>`, upstream.KindDecode},
		{"missing field", http.StatusOK, `{"data":[{"n":"ACME","v":{"ch":1.5}}]}`, upstream.KindMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newServedRelay(t, func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			out := r.Handle(context.Background(), textEvent(21, 99, "ACME"))

			assert.Equal(t, OutboundMessage{ChatID: 21, Text: "No such stock found", ReplyTo: 99}, out)
			require.Len(t, rec.entries, 1)
			assert.Equal(t, string(tt.outcome), rec.entries[0].Outcome)
		})
	}
}

func TestHandleTextMessage_Unreachable(t *testing.T) {
	logger := zerolog.Nop()
	client := upstream.NewClient("http://127.0.0.1:1/", &logger)
	rec := &memJournal{}
	r := NewRelay(client, rec, config.DefaultMessages, config.DefaultMessages.Help, &logger)

	out := r.HandleTextMessage(context.Background(), textEvent(21, 99, "ACME"))

	assert.Equal(t, "No such stock found", out.Text)
	assert.Equal(t, 99, out.ReplyTo)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, string(upstream.KindTransport), rec.entries[0].Outcome)
	assert.Zero(t, rec.entries[0].HTTPStatus)
}

func TestHandle_CustomMessages(t *testing.T) {
	up := &fakeUpstream{}
	logger := zerolog.Nop()
	msgs := config.Messages{
		Start:        "hi",
		Help:         "see list",
		LoginMissing: "no link",
		StockMissing: "unknown",
	}
	r := NewRelay(up, nil, msgs, msgs.Help, &logger)

	assert.Equal(t, "hi", r.Handle(context.Background(), InboundEvent{Kind: StartCommand}).Text)
	assert.Equal(t, "see list", r.Handle(context.Background(), InboundEvent{Kind: HelpCommand}).Text)
	assert.Equal(t, "no link", r.Handle(context.Background(), InboundEvent{Kind: LoginCommand}).Text)
	assert.Equal(t, "unknown", r.Handle(context.Background(), InboundEvent{Kind: TextMessage, Text: "X"}).Text)
	assert.Equal(t, []string{"X"}, up.quoteCalls)
}

func TestHandle_Concurrent(t *testing.T) {
	r, rec := newServedRelay(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"data":[{"n":"ACME","v":{"ch":1.5,"chp":0.5,"open_price":100,"prev_close_price":98.5,"high_price":102,"low_price":97,"lp":100}}]}`))
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			out := r.Handle(context.Background(), textEvent(int64(id), id, "ACME"))
			assert.Equal(t, acmeReply, out.Text)
			assert.Equal(t, id, out.ReplyTo)
		}(i)
	}
	wg.Wait()

	assert.Len(t, rec.entries, 16)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "start", StartCommand.String())
	assert.Equal(t, "help", HelpCommand.String())
	assert.Equal(t, "login", LoginCommand.String())
	assert.Equal(t, "text", TextMessage.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}
