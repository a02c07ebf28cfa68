package exec

import (
	"context"
	"time"

	"github.com/franvera/fandb/internal/database"
)

// Executor fans a statement batch out across multiple databases. Execution
// is strictly sequential: statement by statement, database by database, on a
// single goroutine per run.
type Executor struct {
	connector database.Connector
}

// NewExecutor creates an executor backed by the given connector.
func NewExecutor(connector database.Connector) *Executor {
	return &Executor{connector: connector}
}

// Run splits the query into statements and executes them against each
// database in selection order, streaming events on the returned channel.
// The channel is closed once the run completes; the last two events are
// always a SummaryEvent and a DoneEvent carrying the run log.
func (e *Executor) Run(ctx context.Context, query string, databases []string) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)
		e.run(ctx, query, databases, events)
	}()
	return events
}

func (e *Executor) run(ctx context.Context, query string, databases []string, events chan<- Event) {
	start := time.Now()
	log := &RunLog{
		Query:     query,
		Databases: databases,
		StartedAt: start,
	}

	statements := SplitStatements(query)
	totalRows := 0

	for _, db := range databases {
		events <- StatusEvent{Database: db, Text: "Querying " + db + "..."}

		session, err := e.connector.Connect(ctx, db)
		if err != nil {
			block := FormatConnectionError(db, err)
			events <- ResultEvent{Text: block}
			log.Entries = append(log.Entries, Entry{
				Database: db,
				Output:   block,
				Err:      err.Error(),
			})
			continue
		}

		for i, stmt := range statements {
			num := i + 1

			res, err := session.Exec(ctx, stmt)
			if err != nil {
				block := FormatStatementError(db, num, err)
				events <- ResultEvent{Text: block}
				log.Entries = append(log.Entries, Entry{
					Database:  db,
					Statement: num,
					Output:    block,
					Err:       err.Error(),
				})
				continue
			}

			block := FormatStatementResult(res, db, num)
			events <- ResultEvent{Text: block}

			rowCount := int(res.RowsAffected)
			if res.HasRows {
				rowCount = res.RowCount
				totalRows += res.RowCount
				events <- RowCountEvent{Statement: num, Database: db, Rows: res.RowCount}
			}
			log.Entries = append(log.Entries, Entry{
				Database:  db,
				Statement: num,
				Output:    block,
				RowCount:  rowCount,
				Duration:  res.Duration,
				Success:   true,
			})
		}

		// One commit per database batch; statement failures above have
		// already been rolled back to their savepoints.
		if err := session.Commit(ctx); err != nil {
			block := FormatConnectionError(db, err)
			events <- ResultEvent{Text: block}
			log.Entries = append(log.Entries, Entry{
				Database: db,
				Output:   block,
				Err:      err.Error(),
			})
		}
		_ = session.Close(ctx)
	}

	log.Elapsed = time.Since(start)
	log.TotalRows = totalRows

	events <- SummaryEvent{Elapsed: log.Elapsed, TotalRows: totalRows}
	events <- DoneEvent{Log: log}
}
