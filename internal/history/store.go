package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/gemmascan/constants"
	"github.com/joseph-ayodele/gemmascan/internal/batch"
)

// Run is one persisted batch run.
type Run struct {
	ID          string
	Mode        string
	Model       string
	StartedAt   time.Time
	FinishedAt  time.Time
	TotalUnits  int
	FailedUnits int
	Status      constants.RunStatus
}

// Store archives batch runs and their per-unit outcomes. Optional: the core
// pipeline never touches it; only the CLI wires it when a DSN is configured.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// $N placeholders work for both drivers: native in postgres, one of
// SQLite's accepted forms.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		model TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		total_units INTEGER NOT NULL,
		failed_units INTEGER NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS run_results (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		content TEXT NOT NULL,
		structured TEXT,
		error_text TEXT,
		schema_ok BOOLEAN NOT NULL,
		PRIMARY KEY (run_id, position)
	)`,
}

// Open connects to the history database and creates the tables if absent.
// postgres:// and postgresql:// DSNs use the pgx stdlib driver; anything
// else opens an SQLite file (or ":memory:").
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "pgx"
	}
	logger.Info("history.open", "driver", driver)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create history tables: %w", err)
		}
	}
	return &Store{db: db, logger: logger}, nil
}

// SaveRun inserts the run row and its per-unit rows in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, results []batch.Result) error {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, model, started_at, finished_at, total_units, failed_units, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.Mode, run.Model, run.StartedAt, run.FinishedAt,
		run.TotalUnits, run.FailedUnits, string(run.Status))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, r := range results {
		var structured any
		if r.Record != nil {
			b, mErr := json.Marshal(r.Record)
			if mErr != nil {
				return fmt.Errorf("marshal record %d: %w", i, mErr)
			}
			structured = string(b)
		}
		var errText any
		if r.Err != nil {
			errText = r.Err.Error()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_results (run_id, position, label, content, structured, error_text, schema_ok)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			run.ID, i, r.Label, r.Text, structured, errText, r.SchemaOK); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("history.run.saved",
		"run_id", run.ID,
		"results", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// HealthCheck pings with a short timeout to catch DSN issues early.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
