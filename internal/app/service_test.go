package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/franvera/fandb/internal/database"
	"github.com/franvera/fandb/internal/history"
)

type stubSession struct{}

func (stubSession) Exec(context.Context, string) (*database.StatementResult, error) {
	return &database.StatementResult{Columns: []string{"n"}, HasRows: true}, nil
}
func (stubSession) Commit(context.Context) error { return nil }
func (stubSession) Close(context.Context) error  { return nil }

type stubConnector struct {
	testErr error
}

func (c *stubConnector) TestConnection(context.Context) error { return c.testErr }

func (c *stubConnector) ListDatabases(context.Context) ([]string, error) {
	return []string{"alpha", "beta"}, nil
}

func (c *stubConnector) ListTables(context.Context, string) ([]database.Table, error) {
	return []database.Table{{Name: "users", Type: database.TableTypeBase}}, nil
}

func (c *stubConnector) Connect(context.Context, string) (database.Session, error) {
	return stubSession{}, nil
}

func newTestService(t *testing.T, connector *stubConnector) *Service {
	t.Helper()
	hist := history.Open(filepath.Join(t.TempDir(), "history.json"))
	return NewService(func(database.Target) database.Connector {
		return connector
	}, hist)
}

func TestServiceConnect(t *testing.T) {
	svc := newTestService(t, &stubConnector{})

	if svc.Connected() {
		t.Fatal("service should start disconnected")
	}

	target := database.Target{Host: "db.internal", Port: 5432, Username: "ops"}
	if err := svc.Connect(context.Background(), target); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !svc.Connected() {
		t.Error("Connected() = false after Connect")
	}
	if got := svc.ServerAddr(); got != "db.internal:5432" {
		t.Errorf("ServerAddr() = %q", got)
	}
	if got := svc.Username(); got != "ops" {
		t.Errorf("Username() = %q", got)
	}
}

func TestServiceConnectFailure(t *testing.T) {
	svc := newTestService(t, &stubConnector{testErr: errors.New("auth failed")})

	err := svc.Connect(context.Background(), database.Target{Host: "x"})
	var connErr *ErrConnection
	if !errors.As(err, &connErr) {
		t.Fatalf("Connect() error = %v, want *ErrConnection", err)
	}
	if svc.Connected() {
		t.Error("Connected() = true after failed Connect")
	}
}

func TestServiceRunGating(t *testing.T) {
	svc := newTestService(t, &stubConnector{})
	ctx := context.Background()

	// Not connected yet.
	if _, err := svc.Run(ctx, "SELECT 1", []string{"alpha"}); err == nil {
		t.Fatal("Run() before Connect should fail")
	}

	if err := svc.Connect(ctx, database.Target{Host: "x"}); err != nil {
		t.Fatal(err)
	}

	// No databases selected.
	if _, err := svc.Run(ctx, "SELECT 1", nil); err == nil {
		t.Fatal("Run() without databases should fail")
	}

	events, err := svc.Run(ctx, "SELECT 1", []string{"alpha"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// A second run is rejected while the first is active.
	if _, err := svc.Run(ctx, "SELECT 2", []string{"alpha"}); !errors.Is(err, ErrQueryRunning) {
		t.Errorf("concurrent Run() error = %v, want ErrQueryRunning", err)
	}

	for range events {
	}
	svc.RunFinished()

	if _, err := svc.Run(ctx, "SELECT 3", []string{"alpha"}); err != nil {
		t.Errorf("Run() after RunFinished error = %v", err)
	}
	svc.RunFinished()
}

func TestServiceRunRecordsHistory(t *testing.T) {
	svc := newTestService(t, &stubConnector{})
	ctx := context.Background()

	if err := svc.Connect(ctx, database.Target{Host: "x"}); err != nil {
		t.Fatal(err)
	}

	events, err := svc.Run(ctx, "SELECT 42", []string{"alpha"})
	if err != nil {
		t.Fatal(err)
	}
	for range events {
	}
	svc.RunFinished()

	entries := svc.History()
	if len(entries) != 1 || entries[0].Query != "SELECT 42" {
		t.Errorf("history = %+v, want the executed query", entries)
	}
}

func TestServiceCheckQuery(t *testing.T) {
	svc := newTestService(t, &stubConnector{})

	tests := []struct {
		name            string
		query           string
		wantDestructive bool
		wantErr         bool
	}{
		{name: "plain select", query: "SELECT 1", wantDestructive: false},
		{name: "destructive", query: "DROP TABLE users", wantDestructive: true},
		{name: "empty", query: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			destructive, err := svc.CheckQuery(tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if destructive != tt.wantDestructive {
				t.Errorf("CheckQuery() destructive = %v, want %v", destructive, tt.wantDestructive)
			}
		})
	}
}
