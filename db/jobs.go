package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/corebit/img2dataurl/logger"
	_ "modernc.org/sqlite"
)

// Job statuses recorded in the history table.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Job is a single recorded resize invocation.
type Job struct {
	ID           int
	Requester    string
	MediaType    string
	Format       string
	TargetWidth  int
	TargetHeight int
	Status       string
	Detail       string
	DurationMs   int64
	CreatedAt    time.Time
}

// Database manages resize job history persistence using SQLite.
type Database struct {
	db  *sql.DB
	log zerolog.Logger
	mu  sync.RWMutex
}

// NewDatabase initializes a SQLite database at the given path and creates
// the schema.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	d := &Database{db: db, log: logger.With("db")}

	if err := d.createSchema(); err != nil {
		if cerr := db.Close(); cerr != nil {
			d.log.Warn().Err(cerr).Msg("failed to close sqlite database after createSchema error")
		}
		return nil, err
	}

	d.log.Info().Str("path", dbPath).Msg("job history database initialized")
	return d, nil
}

func (d *Database) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS resize_jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		requester TEXT NOT NULL,
		media_type TEXT NOT NULL,
		format TEXT NOT NULL,
		target_width INTEGER NOT NULL DEFAULT 0,
		target_height INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		detail TEXT,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create resize_jobs table: %w", err)
	}
	return nil
}

// SaveJob appends a job record and fills in its assigned ID.
func (d *Database) SaveJob(job *Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO resize_jobs (requester, media_type, format, target_width, target_height, status, detail, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := d.db.Exec(query,
		job.Requester, job.MediaType, job.Format,
		job.TargetWidth, job.TargetHeight,
		job.Status, job.Detail, job.DurationMs, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		job.ID = int(id)
	}

	d.log.Debug().Int("id", job.ID).Str("status", job.Status).Msg("resize job recorded")
	return nil
}

// GetJob retrieves a single job by ID, or nil when it does not exist.
func (d *Database) GetJob(id int) (*Job, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var j Job
	query := `
	SELECT id, requester, media_type, format, target_width, target_height, status, detail, duration_ms, created_at
	FROM resize_jobs
	WHERE id = ?;
	`

	err := d.db.QueryRow(query, id).Scan(
		&j.ID, &j.Requester, &j.MediaType, &j.Format,
		&j.TargetWidth, &j.TargetHeight,
		&j.Status, &j.Detail, &j.DurationMs, &j.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &j, nil
}

// ListJobs returns the most recent jobs, newest first.
func (d *Database) ListJobs(limit int) ([]*Job, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
	SELECT id, requester, media_type, format, target_width, target_height, status, detail, duration_ms, created_at
	FROM resize_jobs
	ORDER BY id DESC
	LIMIT ?;
	`

	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var jobs []*Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(
			&j.ID, &j.Requester, &j.MediaType, &j.Format,
			&j.TargetWidth, &j.TargetHeight,
			&j.Status, &j.Detail, &j.DurationMs, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &j)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// ResetJobs deletes all recorded jobs.
func (d *Database) ResetJobs() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec(`DELETE FROM resize_jobs;`)
	if err != nil {
		return fmt.Errorf("failed to reset jobs: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	d.log.Info().Int64("rows_deleted", rowsAffected).Msg("job history reset")
	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
