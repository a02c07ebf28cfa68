package database

import "context"

// Connector opens short-lived connections to databases on a single server.
// All implementations must be safe for concurrent use.
type Connector interface {
	// TestConnection verifies the server accepts the configured credentials.
	TestConnection(ctx context.Context) error

	// ListDatabases returns the user databases available on the server.
	ListDatabases(ctx context.Context) ([]string, error)

	// ListTables returns tables and views in a database, ordered by type
	// then name.
	ListTables(ctx context.Context, database string) ([]Table, error)

	// Connect opens a fresh session against a named database. Sessions are
	// never pooled or reused across runs.
	Connect(ctx context.Context, database string) (Session, error)
}

// Session is a dedicated connection to one database carrying a statement
// batch. A failed Exec leaves the session usable for further statements;
// the batch becomes permanent only on Commit.
type Session interface {
	// Exec runs one statement and returns its outcome. A non-nil error is
	// a statement-level failure, not a connection failure.
	Exec(ctx context.Context, stmt string) (*StatementResult, error)

	// Commit makes the batch's changes permanent.
	Commit(ctx context.Context) error

	// Close releases the connection. Uncommitted work is discarded.
	Close(ctx context.Context) error
}
