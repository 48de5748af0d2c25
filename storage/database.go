package storage

import (
	"database/sql"
	"sync"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"
)

// --- DBStore ---

// DBStore はコマンド利用回数を SQLite に保存します。
// シークレットやユーザー ID は保存しません。
type DBStore struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewDBStore(dataSourceName string) (*DBStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	store := &DBStore{db: db}
	if err = store.initTables(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init tables")
	}
	return store, nil
}

func (s *DBStore) initTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS command_usage (
			intent TEXT PRIMARY KEY,
			count INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

func (s *DBStore) Close() {
	s.db.Close()
}

func (s *DBStore) PingDB() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Ping()
}

// IncrementCommandUsage increments the usage count for an intent.
func (s *DBStore) IncrementCommandUsage(intent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO command_usage (intent, count)
		VALUES (?, 1)
		ON CONFLICT(intent) DO UPDATE SET count = count + 1, updated_at = CURRENT_TIMESTAMP;
	`
	_, err := s.db.Exec(query, intent)
	return err
}

// GetCommandUsage returns the current counts without resetting them.
func (s *DBStore) GetCommandUsage() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT intent, count FROM command_usage")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsage(rows)
}

// GetAndResetCommandUsage retrieves all command usage counts and clears the table,
// so an idle window reads as empty.
func (s *DBStore) GetAndResetCommandUsage() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query("SELECT intent, count FROM command_usage")
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	usage, err := scanUsage(rows)
	rows.Close()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if _, err = tx.Exec("DELETE FROM command_usage"); err != nil {
		tx.Rollback()
		return nil, err
	}

	return usage, tx.Commit()
}

func scanUsage(rows *sql.Rows) (map[string]int, error) {
	usage := make(map[string]int)
	for rows.Next() {
		var intent string
		var count int
		if err := rows.Scan(&intent, &count); err != nil {
			return nil, err
		}
		usage[intent] = count
	}
	return usage, rows.Err()
}
