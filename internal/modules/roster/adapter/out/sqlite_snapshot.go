package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kqtrainer/internal/modules/roster/domain"
	rosterout "kqtrainer/internal/modules/roster/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshot persists the last fetched roster for offline reads.
type SQLiteSnapshot struct {
	db *sql.DB
}

func NewSQLiteSnapshot(dbPath string) (rosterout.Snapshot, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	snapshot := &SQLiteSnapshot{db: db}
	if err := snapshot.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *SQLiteSnapshot) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS clients (
  user_id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT,
  role TEXT,
  is_active INTEGER NOT NULL,
  total_workouts INTEGER NOT NULL,
  last_workout_at TEXT
);
CREATE TABLE IF NOT EXISTS snapshot_meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create snapshot tables: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshot) SaveClients(ctx context.Context, clients []domain.Client, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("reset clients snapshot: %w", err)
	}
	const stmt = `
INSERT INTO clients (user_id, position, first_name, last_name, email, role, is_active, total_workouts, last_workout_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	for i, c := range clients {
		lastWorkout := ""
		if !c.LastWorkoutAt.IsZero() {
			lastWorkout = c.LastWorkoutAt.Format(time.RFC3339)
		}
		if _, err := tx.ExecContext(ctx, stmt,
			c.UserID, i, c.FirstName, c.LastName, c.Email, c.Role,
			boolToInt(c.IsActive), c.TotalWorkouts, lastWorkout,
		); err != nil {
			return fmt.Errorf("insert client snapshot: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (key, value) VALUES ('fetched_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		fetchedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("record snapshot time: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteSnapshot) LoadClients(ctx context.Context) ([]domain.Client, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT user_id, first_name, last_name, email, role, is_active, total_workouts, last_workout_at
FROM clients ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query clients snapshot: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		var isActive int
		var lastWorkout string
		if err := rows.Scan(&c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Role, &isActive, &c.TotalWorkouts, &lastWorkout); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan client snapshot: %w", err)
		}
		c.IsActive = isActive != 0
		if lastWorkout != "" {
			if t, err := time.Parse(time.RFC3339, lastWorkout); err == nil {
				c.LastWorkoutAt = t
			}
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate clients snapshot: %w", err)
	}

	var fetchedAt time.Time
	var raw string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = 'fetched_at'`).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// empty snapshot, caller decides
	case err != nil:
		return nil, time.Time{}, fmt.Errorf("read snapshot time: %w", err)
	default:
		fetchedAt, _ = time.Parse(time.RFC3339, raw)
	}
	return clients, fetchedAt, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
