package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, err
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) initSchema() error {
	if _, err := s.db.Exec(GetSchema()); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	_, _ = s.db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, GetSchemaVersion())
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Upsert(rec *Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	result, err := s.db.Exec(`
		INSERT INTO documents (path, principle, title, content_hash, encoding, status, missing, validated_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			principle = excluded.principle,
			title = excluded.title,
			content_hash = excluded.content_hash,
			encoding = excluded.encoding,
			status = excluded.status,
			missing = excluded.missing,
			validated_at = excluded.validated_at,
			updated_at = CURRENT_TIMESTAMP
	`, rec.Path, rec.Principle, rec.Title, rec.ContentHash, rec.Encoding,
		rec.Status, joinMissing(rec.Missing), now)

	if err != nil {
		return 0, fmt.Errorf("upsert document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		row := s.db.QueryRow("SELECT id FROM documents WHERE path = ?", rec.Path)
		if err := row.Scan(&id); err != nil {
			return 0, fmt.Errorf("get document id: %w", err)
		}
	}

	return id, nil
}

func (s *Store) GetByPath(path string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, path, principle, title, content_hash, encoding, status, missing, validated_at, updated_at
		FROM documents WHERE path = ?
	`, path)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return rec, nil
}

func (s *Store) GetByPrinciple(principle string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, path, principle, title, content_hash, encoding, status, missing, validated_at, updated_at
		FROM documents WHERE principle = ?
		ORDER BY updated_at DESC LIMIT 1
	`, principle)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return rec, nil
}

func (s *Store) List() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, path, principle, title, content_hash, encoding, status, missing, validated_at, updated_at
		FROM documents ORDER BY path
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) DeleteByPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM documents WHERE path = ?", path); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Store) Stats() (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{}
	var last sql.NullTime

	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'pass' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'fail' THEN 1 ELSE 0 END), 0),
		       MAX(validated_at)
		FROM documents
	`).Scan(&stats.TotalDocuments, &stats.Passing, &stats.Failing, &last)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	if last.Valid {
		stats.LastScanAt = last.Time
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	rec := &Record{}
	var title, encoding, missing sql.NullString
	var validatedAt, updatedAt sql.NullTime

	err := row.Scan(&rec.ID, &rec.Path, &rec.Principle, &title, &rec.ContentHash,
		&encoding, &rec.Status, &missing, &validatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.Title = title.String
	rec.Encoding = encoding.String
	rec.Missing = splitMissing(missing.String)
	if validatedAt.Valid {
		rec.ValidatedAt = validatedAt.Time
	}
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}
	return rec, nil
}

func joinMissing(missing []string) string {
	return strings.Join(missing, ",")
}

func splitMissing(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
