// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tuicard/internal/model"
	"github.com/verte-zerg/tuicard/internal/srs"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the word collection and review history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS words (
			word TEXT PRIMARY KEY,
			added_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS review_items (
			word TEXT PRIMARY KEY,
			level INTEGER NOT NULL,
			due TEXT NOT NULL,
			reviews INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS review_log (
			id INTEGER PRIMARY KEY,
			word TEXT NOT NULL,
			outcome TEXT NOT NULL,
			level INTEGER NOT NULL,
			reviewed_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_review_items_due ON review_items(due);`,
		`CREATE INDEX IF NOT EXISTS idx_review_log_word ON review_log(word);`,
		`CREATE INDEX IF NOT EXISTS idx_review_log_reviewed_at ON review_log(reviewed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Times are stored as UTC RFC3339Nano text so string comparison in SQL
// matches chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// AddWords inserts new words into the collection and returns how many were
// actually added. Words already present are left untouched.
func (s *Store) AddWords(ctx context.Context, words []string, now time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (word, added_at) VALUES (?, ?) ON CONFLICT(word) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	added := 0
	addedAt := formatTime(now)
	for _, word := range words {
		res, eerr := stmt.ExecContext(ctx, word, addedAt)
		if eerr != nil {
			err = eerr
			return 0, err
		}
		n, eerr := res.RowsAffected()
		if eerr != nil {
			err = eerr
			return 0, err
		}
		added += int(n)
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveWords deletes words along with their scheduling state and review
// history. It returns how many words were actually removed.
func (s *Store) RemoveWords(ctx context.Context, words []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	removed := 0
	for _, word := range words {
		res, eerr := tx.ExecContext(ctx, `DELETE FROM words WHERE word = ?`, word)
		if eerr != nil {
			err = eerr
			return 0, err
		}
		n, eerr := res.RowsAffected()
		if eerr != nil {
			err = eerr
			return 0, err
		}
		removed += int(n)
		if _, eerr := tx.ExecContext(ctx, `DELETE FROM review_items WHERE word = ?`, word); eerr != nil {
			err = eerr
			return 0, err
		}
		if _, eerr := tx.ExecContext(ctx, `DELETE FROM review_log WHERE word = ?`, word); eerr != nil {
			err = eerr
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return removed, nil
}

// ListWords returns every word in the collection, oldest first.
func (s *Store) ListWords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words ORDER BY added_at ASC, word ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Items loads the scheduling state of every reviewed word.
func (s *Store) Items(ctx context.Context) (map[string]srs.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, level, due, reviews FROM review_items`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	items := make(map[string]srs.Item)
	for rows.Next() {
		var item srs.Item
		var due string
		if err := rows.Scan(&item.Word, &item.Level, &due, &item.Reviews); err != nil {
			return nil, err
		}
		parsed, err := parseTime(due)
		if err != nil {
			return nil, err
		}
		item.Due = parsed
		items[item.Word] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ApplyReview stores the graded item and its log entry in one transaction,
// so the schedule and the history can never drift apart.
func (s *Store) ApplyReview(ctx context.Context, item srs.Item, log srs.ReviewLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO review_items (word, level, due, reviews) VALUES (?, ?, ?, ?)
		 ON CONFLICT(word) DO UPDATE SET level = excluded.level, due = excluded.due, reviews = excluded.reviews`,
		item.Word, item.Level, formatTime(item.Due), item.Reviews,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO review_log (word, outcome, level, reviewed_at) VALUES (?, ?, ?, ?)`,
		log.Word, log.Outcome.String(), log.Level, formatTime(log.ReviewedAt),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// DueCount returns how many words are due at the given time. Words that were
// never reviewed count as due.
func (s *Store) DueCount(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words w
		 LEFT JOIN review_items ri ON ri.word = w.word
		 WHERE ri.word IS NULL OR ri.due <= ?`,
		formatTime(now),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DailyReviews returns per-day review totals, oldest day first.
func (s *Store) DailyReviews(ctx context.Context, cfg model.StatsConfig) ([]model.DayAggregate, error) {
	query := `SELECT substr(reviewed_at, 1, 10) AS day,
		SUM(CASE WHEN outcome = 'correct' THEN 1 ELSE 0 END) AS correct,
		SUM(CASE WHEN outcome = 'incorrect' THEN 1 ELSE 0 END) AS incorrect
		FROM review_log
		WHERE (? = '' OR reviewed_at >= ?)
		GROUP BY day
		ORDER BY day ASC`
	since := ""
	if cfg.Since != nil {
		since = formatTime(*cfg.Since)
	}
	rows, err := s.db.QueryContext(ctx, query, since, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var days []model.DayAggregate
	for rows.Next() {
		var agg model.DayAggregate
		var day string
		if err := rows.Scan(&day, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, err
		}
		agg.Day = parsed
		days = append(days, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// WordAggregates joins the collection with scheduling state and per-word
// review totals. Words never reviewed come back at level 0, due since they
// were added.
func (s *Store) WordAggregates(ctx context.Context) ([]model.WordAggregate, error) {
	query := `SELECT w.word,
		COALESCE(ri.level, 0) AS level,
		COALESCE(ri.due, w.added_at) AS due,
		COALESCE(ri.reviews, 0) AS reviews,
		COALESCE(SUM(CASE WHEN rl.outcome = 'correct' THEN 1 ELSE 0 END), 0) AS correct,
		COALESCE(SUM(CASE WHEN rl.outcome = 'incorrect' THEN 1 ELSE 0 END), 0) AS incorrect
		FROM words w
		LEFT JOIN review_items ri ON ri.word = w.word
		LEFT JOIN review_log rl ON rl.word = w.word
		GROUP BY w.word
		ORDER BY w.word ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		var due string
		if err := rows.Scan(&agg.Word, &agg.Level, &due, &agg.Reviews, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		parsed, err := parseTime(due)
		if err != nil {
			return nil, err
		}
		agg.Due = parsed
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
