package exec

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/franvera/fandb/internal/database"
)

// fakeSession replays scripted outcomes keyed by statement text.
type fakeSession struct {
	results   map[string]*database.StatementResult
	errs      map[string]error
	commitErr error

	execed  []string
	commits int
	closed  bool
}

func (s *fakeSession) Exec(_ context.Context, stmt string) (*database.StatementResult, error) {
	s.execed = append(s.execed, stmt)
	if err, ok := s.errs[stmt]; ok {
		return nil, err
	}
	if res, ok := s.results[stmt]; ok {
		return res, nil
	}
	return &database.StatementResult{}, nil
}

func (s *fakeSession) Commit(context.Context) error {
	s.commits++
	return s.commitErr
}

func (s *fakeSession) Close(context.Context) error {
	s.closed = true
	return nil
}

type fakeConnector struct {
	sessions    map[string]*fakeSession
	connectErrs map[string]error
	connects    []string
}

func (c *fakeConnector) TestConnection(context.Context) error { return nil }

func (c *fakeConnector) ListDatabases(context.Context) ([]string, error) { return nil, nil }

func (c *fakeConnector) ListTables(context.Context, string) ([]database.Table, error) {
	return nil, nil
}

func (c *fakeConnector) Connect(_ context.Context, db string) (database.Session, error) {
	c.connects = append(c.connects, db)
	if err, ok := c.connectErrs[db]; ok {
		return nil, err
	}
	return c.sessions[db], nil
}

func selectResult(rows int) *database.StatementResult {
	res := &database.StatementResult{
		Columns:  []string{"id"},
		HasRows:  true,
		RowCount: rows,
	}
	for i := 0; i < rows; i++ {
		res.Rows = append(res.Rows, []string{fmt.Sprint(i + 1)})
	}
	return res
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func TestExecutor_EventOrder(t *testing.T) {
	connector := &fakeConnector{
		sessions: map[string]*fakeSession{
			"alpha": {results: map[string]*database.StatementResult{
				"SELECT 1": selectResult(2),
				"SELECT 2": selectResult(1),
			}},
			"beta": {results: map[string]*database.StatementResult{
				"SELECT 1": selectResult(3),
				"SELECT 2": selectResult(0),
			}},
		},
	}

	executor := NewExecutor(connector)
	events := collect(t, executor.Run(context.Background(), "SELECT 1; SELECT 2", []string{"alpha", "beta"}))

	// Per database: status, then result+rowcount per statement. Then one
	// summary and one done for the run.
	wantKinds := []string{
		"status", "result", "rowcount", "result", "rowcount",
		"status", "result", "rowcount", "result", "rowcount",
		"summary", "done",
	}
	if len(events) != len(wantKinds) {
		t.Fatalf("got %d events, want %d: %#v", len(events), len(wantKinds), events)
	}
	for i, ev := range events {
		if got := eventKind(ev); got != wantKinds[i] {
			t.Errorf("event %d: got %s, want %s", i, got, wantKinds[i])
		}
	}

	if got := connector.connects; !equalStrings(got, []string{"alpha", "beta"}) {
		t.Errorf("databases contacted in order %v, want [alpha beta]", got)
	}

	summary := events[len(events)-2].(SummaryEvent)
	if summary.TotalRows != 6 {
		t.Errorf("TotalRows = %d, want 6", summary.TotalRows)
	}

	done := events[len(events)-1].(DoneEvent)
	if got := len(done.Log.Entries); got != 4 {
		t.Errorf("log entries = %d, want 4", got)
	}
	if done.Log.TotalRows != 6 {
		t.Errorf("log TotalRows = %d, want 6", done.Log.TotalRows)
	}
	for _, session := range connector.sessions {
		if session.commits != 1 {
			t.Errorf("commits = %d, want 1", session.commits)
		}
		if !session.closed {
			t.Error("session not closed")
		}
	}
}

func TestExecutor_StatementErrorContinuesBatch(t *testing.T) {
	session := &fakeSession{
		results: map[string]*database.StatementResult{
			"SELECT 2": selectResult(1),
		},
		errs: map[string]error{
			"SELECT 1": errors.New("relation missing"),
		},
	}
	connector := &fakeConnector{sessions: map[string]*fakeSession{"alpha": session}}

	executor := NewExecutor(connector)
	events := collect(t, executor.Run(context.Background(), "SELECT 1; SELECT 2", []string{"alpha"}))

	if got := len(session.execed); got != 2 {
		t.Fatalf("executed %d statements, want 2", got)
	}
	if session.commits != 1 {
		t.Errorf("commits = %d, want 1 (batch still commits after a statement error)", session.commits)
	}

	done := events[len(events)-1].(DoneEvent)
	entries := done.Log.Entries
	if len(entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(entries))
	}
	if entries[0].Success || entries[0].Err == "" {
		t.Errorf("entry 0 should record the failure: %+v", entries[0])
	}
	if !strings.Contains(entries[0].Output, "Error in Query 1 on alpha") {
		t.Errorf("entry 0 output = %q", entries[0].Output)
	}
	if !entries[1].Success || entries[1].Statement != 2 {
		t.Errorf("entry 1 should record the success: %+v", entries[1])
	}
}

func TestExecutor_ConnectionErrorSkipsDatabase(t *testing.T) {
	session := &fakeSession{
		results: map[string]*database.StatementResult{"SELECT 1": selectResult(2)},
	}
	connector := &fakeConnector{
		sessions:    map[string]*fakeSession{"beta": session},
		connectErrs: map[string]error{"alpha": errors.New("auth failed")},
	}

	executor := NewExecutor(connector)
	events := collect(t, executor.Run(context.Background(), "SELECT 1", []string{"alpha", "beta"}))

	done := events[len(events)-1].(DoneEvent)
	entries := done.Log.Entries
	if len(entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(entries))
	}
	if entries[0].Database != "alpha" || entries[0].Statement != 0 || entries[0].Success {
		t.Errorf("entry 0 should be the alpha connection failure: %+v", entries[0])
	}
	if !strings.Contains(entries[0].Output, "Connection error with alpha") {
		t.Errorf("entry 0 output = %q", entries[0].Output)
	}
	if entries[1].Database != "beta" || !entries[1].Success {
		t.Errorf("entry 1 should be the beta success: %+v", entries[1])
	}

	// The failed database contributes no rows; the run still completes.
	if done.Log.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", done.Log.TotalRows)
	}
}

func TestExecutor_CommitErrorRecorded(t *testing.T) {
	session := &fakeSession{
		results:   map[string]*database.StatementResult{"SELECT 1": selectResult(1)},
		commitErr: errors.New("disk full"),
	}
	connector := &fakeConnector{sessions: map[string]*fakeSession{"alpha": session}}

	executor := NewExecutor(connector)
	events := collect(t, executor.Run(context.Background(), "SELECT 1", []string{"alpha"}))

	done := events[len(events)-1].(DoneEvent)
	entries := done.Log.Entries
	if len(entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(entries))
	}
	last := entries[len(entries)-1]
	if last.Success || last.Statement != 0 || !strings.Contains(last.Err, "disk full") {
		t.Errorf("commit failure not recorded: %+v", last)
	}
	if !session.closed {
		t.Error("session not closed after commit failure")
	}
}

func TestExecutor_RowsAffectedNotInTotal(t *testing.T) {
	session := &fakeSession{
		results: map[string]*database.StatementResult{
			"INSERT INTO t VALUES (1)": {RowsAffected: 1},
			"SELECT 1":                 selectResult(3),
		},
	}
	connector := &fakeConnector{sessions: map[string]*fakeSession{"alpha": session}}

	executor := NewExecutor(connector)
	events := collect(t, executor.Run(context.Background(),
		"INSERT INTO t VALUES (1); SELECT 1", []string{"alpha"}))

	// Only result sets count toward total rows.
	done := events[len(events)-1].(DoneEvent)
	if done.Log.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", done.Log.TotalRows)
	}

	// No RowCountEvent for the INSERT.
	counts := 0
	for _, ev := range events {
		if _, ok := ev.(RowCountEvent); ok {
			counts++
		}
	}
	if counts != 1 {
		t.Errorf("RowCountEvent count = %d, want 1", counts)
	}
}

func TestExecutor_StatementDurationRecorded(t *testing.T) {
	res := selectResult(1)
	res.Duration = 42 * time.Millisecond
	session := &fakeSession{
		results: map[string]*database.StatementResult{"SELECT 1": res},
	}
	connector := &fakeConnector{sessions: map[string]*fakeSession{"alpha": session}}

	executor := NewExecutor(connector)
	events := collect(t, executor.Run(context.Background(), "SELECT 1", []string{"alpha"}))

	done := events[len(events)-1].(DoneEvent)
	if len(done.Log.Entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(done.Log.Entries))
	}
	if got := done.Log.Entries[0].Duration; got != 42*time.Millisecond {
		t.Errorf("entry Duration = %v, want 42ms", got)
	}
}

func eventKind(ev Event) string {
	switch ev.(type) {
	case StatusEvent:
		return "status"
	case ResultEvent:
		return "result"
	case RowCountEvent:
		return "rowcount"
	case SummaryEvent:
		return "summary"
	case DoneEvent:
		return "done"
	default:
		return "unknown"
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
