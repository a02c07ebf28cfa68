package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/franvera/fandb/internal/database"
	"github.com/franvera/fandb/internal/exec"
	"github.com/franvera/fandb/internal/history"
)

// ConnectorFactory builds a connector for a server target. Injected so the
// TUI never depends on a concrete driver.
type ConnectorFactory func(database.Target) database.Connector

// Service coordinates application-level operations between the TUI, the
// connector, the execution engine and the history store.
type Service struct {
	newConnector ConnectorFactory
	history      *history.Store

	mu        sync.Mutex
	connector database.Connector
	executor  *exec.Executor
	target    database.Target
	running   bool
}

// NewService creates a new application service.
func NewService(newConnector ConnectorFactory, hist *history.Store) *Service {
	return &Service{
		newConnector: newConnector,
		history:      hist,
	}
}

// Connect probes the server with the given target and keeps the connector on
// success.
func (s *Service) Connect(ctx context.Context, target database.Target) error {
	c := s.newConnector(target)
	if err := c.TestConnection(ctx); err != nil {
		return &ErrConnection{Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.connector = c
	s.executor = exec.NewExecutor(c)
	s.target = target
	return nil
}

// Disconnect drops the current server. Sessions are short-lived, so there is
// nothing to close.
func (s *Service) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connector = nil
	s.executor = nil
	s.target = database.Target{}
}

// Connected reports whether a server connection has been established.
func (s *Service) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connector != nil
}

// ServerAddr returns the connected server's host:port.
func (s *Service) ServerAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target.Addr()
}

// Username returns the connected user.
func (s *Service) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target.Username
}

// LoadDatabases fetches the databases available on the server.
func (s *Service) LoadDatabases(ctx context.Context) ([]string, error) {
	c, err := s.current()
	if err != nil {
		return nil, err
	}
	dbs, err := c.ListDatabases(ctx)
	if err != nil {
		return nil, &ErrQuery{Cause: err}
	}
	return dbs, nil
}

// LoadTables fetches tables and views for one database.
func (s *Service) LoadTables(ctx context.Context, db string) ([]database.Table, error) {
	c, err := s.current()
	if err != nil {
		return nil, err
	}
	tables, err := c.ListTables(ctx, db)
	if err != nil {
		return nil, &ErrQuery{Cause: err}
	}
	return tables, nil
}

// CheckQuery validates the SQL text and reports whether it contains
// destructive operations that need user confirmation.
func (s *Service) CheckQuery(query string) (destructive bool, err error) {
	if err := exec.ValidateQuery(query); err != nil {
		return false, &ErrQuery{Query: query, Cause: err}
	}
	return exec.IsDestructive(query), nil
}

// Run starts a multi-database batch and returns its event channel. Only one
// run may be active at a time; the caller must invoke RunFinished once the
// channel's DoneEvent arrives. The query is recorded in history.
func (s *Service) Run(ctx context.Context, query string, databases []string) (<-chan exec.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.executor == nil {
		return nil, &ErrConnection{Cause: errors.New("not connected")}
	}
	if s.running {
		return nil, ErrQueryRunning
	}
	if len(databases) == 0 {
		return nil, &ErrQuery{Query: query, Cause: errors.New("no databases selected")}
	}

	s.running = true
	s.history.Add(query)
	_ = s.history.Save()

	return s.executor.Run(ctx, query, databases), nil
}

// RunFinished marks the active run as complete.
func (s *Service) RunFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// Running reports whether a run is in flight.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// History returns the recorded queries, oldest first.
func (s *Service) History() []history.Entry {
	return s.history.Entries()
}

// SaveHistory flushes the history store to disk.
func (s *Service) SaveHistory() error {
	if err := s.history.Save(); err != nil {
		return &ErrConfig{Cause: err}
	}
	return nil
}

// ExportLog writes the rendered run log to path.
func (s *Service) ExportLog(log *exec.RunLog, path string) error {
	content := log.Render(s.ServerAddr(), s.Username())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &ErrConfig{Cause: err}
	}
	return nil
}

// DefaultLogFilename names an exported run log after its timestamp.
func DefaultLogFilename(now time.Time) string {
	return "fandb_log_" + now.Format("2006-01-02_15-04-05") + ".txt"
}

func (s *Service) current() (database.Connector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connector == nil {
		return nil, &ErrConnection{Cause: errors.New("not connected")}
	}
	return s.connector, nil
}
