package exec

import "time"

// Event is a progress or result notification emitted while a run is in
// flight. Events arrive in deterministic order: statuses and result blocks
// follow database selection order and statement order, and every run ends
// with a SummaryEvent followed by a DoneEvent.
type Event interface {
	isEvent()
}

// StatusEvent reports which database is currently being queried.
type StatusEvent struct {
	Database string
	Text     string
}

// ResultEvent carries one pre-formatted output block for the console.
type ResultEvent struct {
	Text string
}

// RowCountEvent reports the result-set size of a completed statement.
type RowCountEvent struct {
	Statement int
	Database  string
	Rows      int
}

// SummaryEvent closes out a run with aggregate telemetry.
type SummaryEvent struct {
	Elapsed   time.Duration
	TotalRows int
}

// DoneEvent is the final event of a run; it carries the structured log.
type DoneEvent struct {
	Log *RunLog
}

func (StatusEvent) isEvent()   {}
func (ResultEvent) isEvent()   {}
func (RowCountEvent) isEvent() {}
func (SummaryEvent) isEvent()  {}
func (DoneEvent) isEvent()     {}
