package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Lookup kinds.
const (
	KindLogin = "login"
	KindQuote = "quote"
)

// OutcomeOK marks a lookup that produced a real answer. Failed lookups carry
// the upstream failure kind instead.
const OutcomeOK = "ok"

// Entry is one upstream lookup as seen by an operator.
type Entry struct {
	ID         uuid.UUID
	ChatID     int64
	Kind       string
	Symbol     string
	Outcome    string
	HTTPStatus int
	CreatedAt  time.Time
}

// Recorder appends lookup entries. It is write-only: nothing in the relay
// reads entries back.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Execer is the subset of pgxpool.Pool the journal needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const createTableSQL = `CREATE TABLE IF NOT EXISTS lookup_journal (
	id          UUID PRIMARY KEY,
	chat_id     BIGINT NOT NULL,
	kind        TEXT NOT NULL,
	symbol      TEXT NOT NULL DEFAULT '',
	outcome     TEXT NOT NULL,
	http_status INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertEntrySQL = `INSERT INTO lookup_journal (id, chat_id, kind, symbol, outcome, http_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// PgJournal stores entries in PostgreSQL.
type PgJournal struct {
	db  Execer
	now func() time.Time
}

// NewPgJournal creates a journal backed by db.
func NewPgJournal(db Execer) *PgJournal {
	return &PgJournal{
		db:  db,
		now: time.Now,
	}
}

// Migrate creates the journal table if it does not exist.
func (j *PgJournal) Migrate(ctx context.Context) error {
	if _, err := j.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("unable to create lookup_journal: %w", err)
	}
	return nil
}

// Record inserts e, filling in ID and CreatedAt when unset.
func (j *PgJournal) Record(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = j.now().UTC()
	}

	_, err := j.db.Exec(ctx, insertEntrySQL,
		e.ID, e.ChatID, e.Kind, e.Symbol, e.Outcome, e.HTTPStatus, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("unable to record lookup: %w", err)
	}
	return nil
}

// Nop discards entries.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
