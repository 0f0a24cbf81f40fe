package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"
)

var ErrDuplicateEntryID = errors.New("duplicate entry id")

const entriesTable = "workout_entry"

var entryColumns = []string{
	"id", "position", "timestamp_ms", "movement", "movement_type", "mode", "amount",
}

// PsqlRepo keeps the entry collection in postgres, one row per entry,
// with the collection order kept in the position column.
type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) ListAll(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.entries.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, timestamp_ms, movement, movement_type, mode, amount
		FROM workout_entry
		ORDER BY position ASC, id ASC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Entry, 0)
	skipped := 0
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Movement, &e.MovementType, &e.Mode, &e.Amount); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if !e.Mode.IsValid() || !e.MovementType.IsValid() || e.Amount <= 0 || e.ID == "" {
			skipped++
			continue
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if skipped > 0 {
		log.Warnf("workout entries: skipped %d invalid rows", skipped)
	}
	span.SetAttributes(attribute.Int("entries.count", len(list)))

	return list, nil
}

// Replace swaps the stored collection for list in a single transaction.
func (r *PsqlRepo) Replace(ctx context.Context, list []Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.entries.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries.count", len(list)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM workout_entry;`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	rows := make([][]any, 0, len(list))
	for i, e := range list {
		rows = append(rows, []any{
			e.ID, i, e.Timestamp, e.Movement, string(e.MovementType), string(e.Mode), e.Amount,
		})
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{entriesTable}, entryColumns, pgx.CopyFromRows(rows))
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return fmt.Errorf("copy entries: %w: %w", ErrDuplicateEntryID, err)
		}
		return fmt.Errorf("copy entries: %w", err)
	}
	if copied != int64(len(list)) {
		return fmt.Errorf("copy entries: expected %d rows, copied %d", len(list), copied)
	}

	return nil
}
