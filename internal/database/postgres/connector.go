package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/franvera/fandb/internal/database"
)

const (
	// maintenanceDB is the database used for server-level metadata queries.
	maintenanceDB = "postgres"

	connectTimeout = 10 * time.Second
)

// Connector implements database.Connector for PostgreSQL servers. Every
// operation opens a fresh connection and closes it before returning; only
// Connect hands the connection out, wrapped in a session.
type Connector struct {
	target database.Target
}

// New creates a connector for the given server target.
func New(target database.Target) *Connector {
	return &Connector{target: target}
}

func (c *Connector) dsn(dbName string) string {
	t := c.target
	u := url.URL{
		Scheme: "postgresql",
		Host:   t.Addr(),
		Path:   "/" + dbName,
	}
	if t.Username != "" {
		if t.Password != "" {
			u.User = url.UserPassword(t.Username, t.Password)
		} else {
			u.User = url.User(t.Username)
		}
	}
	if t.SSLMode != "" {
		u.RawQuery = "sslmode=" + t.SSLMode
	}
	return u.String()
}

func (c *Connector) connect(ctx context.Context, dbName string) (*pgx.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, c.dsn(dbName))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", dbName, err)
	}
	return conn, nil
}

// TestConnection verifies the server accepts the configured credentials.
func (c *Connector) TestConnection(ctx context.Context) error {
	conn, err := c.connect(ctx, maintenanceDB)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	var one int
	if err := conn.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping query: %w", err)
	}
	return nil
}

// ListDatabases returns the non-template, connectable databases on the server.
func (c *Connector) ListDatabases(ctx context.Context) ([]string, error) {
	conn, err := c.connect(ctx, maintenanceDB)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, queryListDatabases)
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan database: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListTables returns base tables and views in a database.
func (c *Connector) ListTables(ctx context.Context, dbName string) ([]database.Table, error) {
	conn, err := c.connect(ctx, dbName)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, queryListTables)
	if err != nil {
		return nil, fmt.Errorf("list tables in %s: %w", dbName, err)
	}
	defer rows.Close()

	var tables []database.Table
	for rows.Next() {
		var t database.Table
		if err := rows.Scan(&t.Name, &t.Type); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// Connect opens a session against a named database with a transaction held
// open for the statement batch.
func (c *Connector) Connect(ctx context.Context, dbName string) (database.Session, error) {
	conn, err := c.connect(ctx, dbName)
	if err != nil {
		return nil, err
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("begin on %s: %w", dbName, err)
	}

	return &session{conn: conn, tx: tx}, nil
}

// session runs a statement batch over one dedicated connection. Each
// statement executes inside a savepoint so a failure does not poison the
// remainder of the batch.
type session struct {
	conn      *pgx.Conn
	tx        pgx.Tx
	committed bool
}

func (s *session) Exec(ctx context.Context, stmt string) (*database.StatementResult, error) {
	start := time.Now()

	// Nested Begin on pgx issues a savepoint under the open transaction.
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("savepoint: %w", err)
	}

	rows, err := sp.Query(ctx, stmt)
	if err != nil {
		_ = sp.Rollback(ctx)
		return nil, err
	}

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var (
		out   [][]string
		count int
	)
	for rows.Next() {
		count++
		if count > database.MaxDisplayRows {
			continue
		}
		values, err := rows.Values()
		if err != nil {
			rows.Close()
			_ = sp.Rollback(ctx)
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				row[i] = "NULL"
			} else {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		out = append(out, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		_ = sp.Rollback(ctx)
		return nil, err
	}
	tag := rows.CommandTag()

	if err := sp.Commit(ctx); err != nil {
		return nil, fmt.Errorf("release savepoint: %w", err)
	}

	return &database.StatementResult{
		Columns:      columns,
		Rows:         out,
		RowCount:     count,
		RowsAffected: tag.RowsAffected(),
		HasRows:      len(fields) > 0,
		Truncated:    count > database.MaxDisplayRows,
		Duration:     time.Since(start),
	}, nil
}

func (s *session) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.committed = true
	return nil
}

func (s *session) Close(ctx context.Context) error {
	if !s.committed {
		_ = s.tx.Rollback(ctx)
	}
	return s.conn.Close(ctx)
}
