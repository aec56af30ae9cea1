package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Report text protocol tokens. Consumers rely on these being emitted
// literally, one per line: a start marker, zero or more summary lines, and
// a terminal marker that is always present exactly once, on every exit
// path.
const (
	ReportStartMarker = "REPORT_START"
	ReportEndMarker   = "REPORT_END"

	reportLineFormat = "POST_SUMMARY|%d|%s|%d|%s"
)

// Sink receives report output one line at a time. Implementations must not
// retain lines; the engine does not depend on sink durability.
type Sink interface {
	Emit(line string)
}

// GenerateReport streams up to maxItems per-post aggregate lines, newest
// post first, into the sink. The start marker is emitted before any store
// access and the terminal marker is emitted on every exit path, including
// early return (maxItems <= 0), mid-stream failure and cancellation.
//
// Rows are pulled from the store one at a time, only when the sink has
// consumed the previous line, so memory stays bounded to the single
// in-flight aggregate. On failure the error is logged, the terminal marker
// is still emitted, and the error is returned; lines already emitted are
// not retracted. Cancellation surfaces as ctx.Err so callers can
// distinguish it from store errors with errors.Is.
func (s *Service) GenerateReport(ctx context.Context, maxItems int, sink Sink) error {
	runID := uuid.New().String()
	logger().Debugf("report %s: starting (max_items=%d)", runID, maxItems)

	sink.Emit(ReportStartMarker)
	defer sink.Emit(ReportEndMarker)

	if maxItems <= 0 {
		return nil
	}

	rows, err := s.store.StreamReport(ctx, maxItems)
	if err != nil {
		logger().Errorf("report %s: opening stream failed (max_items=%d): %v", runID, maxItems, err)
		return fmt.Errorf("streaming report: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger().Warnf("report %s: failed to close report rows: %v", runID, err)
		}
	}()

	emitted := 0
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			logger().Errorf("report %s: canceled after %d lines", runID, emitted)
			return err
		}

		rep, err := rows.Report()
		if err != nil {
			logger().Errorf("report %s: reading aggregate failed after %d lines: %v", runID, emitted, err)
			return fmt.Errorf("reading report aggregate: %w", err)
		}

		sink.Emit(fmt.Sprintf(reportLineFormat, rep.ID, rep.AuthorName, rep.CommentCount, rep.LatestCommentAuthor))
		emitted++
	}

	if err := rows.Err(); err != nil {
		logger().Errorf("report %s: stream failed after %d lines: %v", runID, emitted, err)
		return fmt.Errorf("streaming report: %w", err)
	}

	logger().Debugf("report %s: completed (%d lines)", runID, emitted)
	return nil
}
