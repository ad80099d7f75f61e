package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var runEventColumns = []string{
	"id", "sequence", "timestamp", "run_id", "deck_path", "slide_count",
	"image_count", "question_count", "summary_degraded", "quiz_degraded",
	"duration_ms", "success", "error_message",
}

func (r *eventRepo) AppendRunEvent(ctx context.Context, data RunEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableRuns).
		Columns(runEventColumns[1:]...).
		Values(
			seqNum, time.Now().UnixMilli(), data.RunID, data.DeckPath, data.SlideCount,
			data.ImageCount, data.QuestionCount, data.SummaryDegraded, data.QuizDegraded,
			data.DurationMs, data.Success, data.ErrorMessage,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save run event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRunEvents(ctx context.Context, opts QueryOpts) ([]RunEvent, error) {
	sel := builder().Select(runEventColumns...).
		From(entsql.Table(tableRuns)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	var out []RunEvent
	for rows.Next() {
		var (
			e  RunEvent
			ts int64
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.RunID, &e.DeckPath, &e.SlideCount,
			&e.ImageCount, &e.QuestionCount, &e.SummaryDegraded, &e.QuizDegraded,
			&e.DurationMs, &e.Success, &e.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
