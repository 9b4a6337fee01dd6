package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	perr "assistant/internal/platform/errors"
)

type stubTag string

func (c stubTag) String() string      { return string(c) }
func (c stubTag) RowsAffected() int64 { return 1 }

type stubQuerier struct {
	lastSQL  string
	lastArgs []any

	execTag CommandTag
	execErr error

	rows     Rows
	queryErr error

	rowVal any
	rowErr error
}

func (s *stubQuerier) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	s.lastSQL = sql
	s.lastArgs = args
	return s.execTag, s.execErr
}

func (s *stubQuerier) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	s.lastSQL = sql
	s.lastArgs = args
	return s.rows, s.queryErr
}

func (s *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) Row {
	s.lastSQL = sql
	s.lastArgs = args
	return stubRow{val: s.rowVal, err: s.rowErr}
}

type stubRow struct {
	val any
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 0 {
		return nil
	}
	switch p := dest[0].(type) {
	case *bool:
		*p = r.val.(bool)
	case *int:
		*p = r.val.(int)
	case *string:
		*p = r.val.(string)
	default:
		return errors.New("unsupported scan dest")
	}
	return nil
}

// stubRows feeds string pairs, enough for the scanner-based helpers
type stubRows struct {
	data   [][2]string
	idx    int
	err    error
	closed bool
}

func newStubRows(data ...[2]string) *stubRows { return &stubRows{data: data, idx: -1} }

func (r *stubRows) Columns() []string { return []string{"user_id", "email_type"} }

func (r *stubRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *stubRows) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of bounds")
	}
	row := r.data[r.idx]
	for i := range dest {
		p, ok := dest[i].(*string)
		if !ok {
			return errors.New("dest must be *string")
		}
		*p = row[i]
	}
	return nil
}

func (r *stubRows) Err() error { return r.err }
func (r *stubRows) Close()     { r.closed = true }

type logEntry struct {
	UserID    string
	EmailType string
}

func scanLogEntry(r Row) (logEntry, error) {
	var e logEntry
	err := r.Scan(&e.UserID, &e.EmailType)
	return e, err
}

func TestExec_Passthrough(t *testing.T) {
	q := &stubQuerier{execTag: stubTag("INSERT 0 1")}

	tag, err := Exec(context.Background(), q, "INSERT INTO email_log VALUES ($1)", "u1")
	if err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	if tag.String() != "INSERT 0 1" {
		t.Fatalf("tag = %q", tag.String())
	}
	if !strings.Contains(q.lastSQL, "email_log") || len(q.lastArgs) != 1 {
		t.Fatalf("passthrough lost sql/args: %q %v", q.lastSQL, q.lastArgs)
	}
}

func TestExecOne_ExactlyOne(t *testing.T) {
	q := &stubQuerier{execTag: stubTag("UPDATE 1")}
	if err := ExecOne(context.Background(), q, "UPDATE snapshot_sections SET payload = $1"); err != nil {
		t.Fatalf("ExecOne error: %v", err)
	}

	q.execTag = stubTag("UPDATE 0")
	if err := ExecOne(context.Background(), q, "UPDATE snapshot_sections SET payload = $1"); err == nil {
		t.Fatal("expected error on zero rows affected")
	}
}

func TestExecOne_PropagatesExecError(t *testing.T) {
	q := &stubQuerier{execErr: errors.New("connection reset")}
	if err := ExecOne(context.Background(), q, "DELETE FROM email_log"); err == nil {
		t.Fatal("expected exec error")
	}
}

func TestScalar_OK(t *testing.T) {
	q := &stubQuerier{rowVal: true}
	sent, err := Scalar[bool](context.Background(), q, "SELECT EXISTS (SELECT 1 FROM email_log)")
	if err != nil {
		t.Fatalf("Scalar error: %v", err)
	}
	if !sent {
		t.Fatal("want true")
	}
}

func TestScalar_ScanError(t *testing.T) {
	q := &stubQuerier{rowErr: errors.New("no rows")}
	if _, err := Scalar[bool](context.Background(), q, "SELECT EXISTS (SELECT 1)"); err == nil {
		t.Fatal("expected scan error")
	}
}

func TestOne_SingleRow(t *testing.T) {
	rows := newStubRows([2]string{"u1", "friend_summary"})
	q := &stubQuerier{rows: rows}

	e, err := One(context.Background(), q, scanLogEntry, "SELECT user_id, email_type FROM email_log")
	if err != nil {
		t.Fatalf("One error: %v", err)
	}
	if e.UserID != "u1" || e.EmailType != "friend_summary" {
		t.Fatalf("got %+v", e)
	}
	if !rows.closed {
		t.Fatal("rows not closed")
	}
}

func TestOne_NotFoundAndTooMany(t *testing.T) {
	q := &stubQuerier{rows: newStubRows()}
	if _, err := One(context.Background(), q, scanLogEntry, "SELECT 1"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	q.rows = newStubRows(
		[2]string{"u1", "friend_summary"},
		[2]string{"u1", "personal_summary"},
	)
	if _, err := One(context.Background(), q, scanLogEntry, "SELECT 1"); err == nil {
		t.Fatal("expected error on extra rows")
	}
}

func TestMany_MultiRow(t *testing.T) {
	q := &stubQuerier{rows: newStubRows(
		[2]string{"u1", "friend_summary"},
		[2]string{"u2", "personal_summary"},
	)}

	got, err := Many(context.Background(), q, scanLogEntry, "SELECT user_id, email_type FROM email_log")
	if err != nil {
		t.Fatalf("Many error: %v", err)
	}
	if len(got) != 2 || got[1].UserID != "u2" {
		t.Fatalf("got %+v", got)
	}
}

func TestMany_QueryError(t *testing.T) {
	q := &stubQuerier{queryErr: errors.New("relation missing")}
	if _, err := Many(context.Background(), q, scanLogEntry, "SELECT 1"); err == nil {
		t.Fatal("expected query error")
	}
}
