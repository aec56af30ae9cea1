package core

// ReportRows is a pull-based cursor over per-post report aggregates.
// Implementations stream rows from the underlying store one at a time;
// consumers must call Close when done and check Err after the final Next.
//
// The cursor is one-shot: once Next returns false it stays false. A new
// report run obtains a fresh cursor.
type ReportRows interface {
	// Next advances to the next aggregate. It returns false when the
	// stream is exhausted or a read error occurred; Err distinguishes the
	// two.
	Next() bool

	// Report returns the aggregate at the current position. Only valid
	// after a successful Next.
	Report() (PostReport, error)

	// Err returns the first error encountered while streaming, if any.
	Err() error

	// Close releases the underlying cursor resources.
	Close() error
}
