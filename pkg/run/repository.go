package run

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrRunNotFound = errors.New("run not found")

type Repository interface {
	StoreRun(ctx context.Context, run Run, events []event.CalendarEvent) error
	GetRun(ctx context.Context, id uuid.UUID) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	GetRunEvents(ctx context.Context, id uuid.UUID) ([]event.CalendarEvent, error)
	DeleteRun(ctx context.Context, id uuid.UUID) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// StoreRun writes the run and its events in one transaction.
func (r *RepositoryImpl) StoreRun(ctx context.Context, run Run, events []event.CalendarEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	query := `INSERT INTO run (id, captured_at, page_url, event_count, total_minutes)
	          VALUES (?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, run.ID.String(), run.CapturedAt.UnixMilli(), run.PageURL, run.EventCount, run.TotalMinutes)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}

	eventQuery := `INSERT INTO run_event (run_id, title, day, start_minutes, end_minutes, color)
	               VALUES (?, ?, ?, ?, ?, ?)`
	eventStmt, err := tx.PrepareContext(ctx, eventQuery)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer eventStmt.Close()

	for _, e := range events {
		_, err := eventStmt.ExecContext(ctx, run.ID.String(), e.Title, e.Day(), e.StartMinutes, e.EndMinutes, e.Color)
		if err != nil {
			err := fmt.Errorf("could not store event of run %s: %v", run.ID, err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	query := `SELECT id, captured_at, page_url, event_count, total_minutes
	          FROM run
	          WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query run: %w", err)
		log.Error(err)
		return Run{}, err
	}
	return run, nil
}

func (r *RepositoryImpl) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, captured_at, page_url, event_count, total_minutes
	          FROM run
	          ORDER BY captured_at DESC
	          LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		err := fmt.Errorf("could not query runs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r *RepositoryImpl) GetRunEvents(ctx context.Context, id uuid.UUID) ([]event.CalendarEvent, error) {
	query := `SELECT title, day, start_minutes, end_minutes, color
	          FROM run_event
	          WHERE run_id = ?
	          ORDER BY day, start_minutes`

	rows, err := r.db.QueryContext(ctx, query, id.String())
	if err != nil {
		err := fmt.Errorf("could not query run events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]event.CalendarEvent, 0, 10)
	for rows.Next() {
		var e event.CalendarEvent
		var day string
		if err := rows.Scan(&e.Title, &day, &e.StartMinutes, &e.EndMinutes, &e.Color); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := time.ParseInLocation("2006-01-02", day, time.Local)
		if err != nil {
			err := fmt.Errorf("invalid stored day %q: %w", day, err)
			log.Error(err)
			return nil, err
		}
		e.Date = date
		events = append(events, e)
	}
	return events, nil
}

func (r *RepositoryImpl) DeleteRun(ctx context.Context, id uuid.UUID) error {
	// run_event rows go with the run through the FK cascade
	query := `DELETE FROM run WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id.String())
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrRunNotFound
	}
	return nil
}

func scanRun(row interface{ Scan(dest ...any) error }) (Run, error) {
	var idString string
	var capturedAtMillis int64
	var run Run
	if err := row.Scan(&idString, &capturedAtMillis, &run.PageURL, &run.EventCount, &run.TotalMinutes); err != nil {
		return Run{}, err
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return Run{}, fmt.Errorf("invalid run id %q: %w", idString, err)
	}
	run.ID = id
	run.CapturedAt = time.UnixMilli(capturedAtMillis)
	return run, nil
}
