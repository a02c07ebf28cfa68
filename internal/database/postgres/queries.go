package postgres

// Metadata queries against the PostgreSQL catalogs.
const (
	queryListDatabases = `
		SELECT datname
		FROM pg_database
		WHERE NOT datistemplate
		  AND datallowconn
		ORDER BY datname`

	queryListTables = `
		SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
		  AND table_type IN ('BASE TABLE', 'VIEW')
		ORDER BY table_type, table_name`
)
