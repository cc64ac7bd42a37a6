package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"github.com/google/uuid"
)

// SQL dialects understood by SQLJournalRepository.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var journalSchema = []string{
	`CREATE TABLE IF NOT EXISTS journals (
		id VARCHAR(64) PRIMARY KEY,
		user_id VARCHAR(255) NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		mood VARCHAR(16) NOT NULL DEFAULT 'okay' CHECK (mood IN ('great', 'good', 'okay', 'bad', 'terrible')),
		analysis TEXT,
		is_private BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journals_user_created ON journals(user_id, created_at DESC)`,
}

const journalColumns = `id, user_id, title, content, mood, analysis, is_private, created_at, updated_at`

// SQLJournalRepository stores journals in a relational "journals" table.
type SQLJournalRepository struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
}

func NewSQLJournalRepository(db *sql.DB, dialect string) *SQLJournalRepository {
	return &SQLJournalRepository{db: db, dialect: dialect, now: storeNow}
}

// InitSchema creates the journals table and its index if they don't exist
func (r *SQLJournalRepository) InitSchema(ctx context.Context) error {
	for _, query := range journalSchema {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to initialise journals schema: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders as $1..$n for PostgreSQL.
func (r *SQLJournalRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *SQLJournalRepository) Create(ctx context.Context, j *models.Journal) error {
	now := r.now()
	id := uuid.NewString()

	_, err := r.db.ExecContext(ctx, r.rebind(`
		INSERT INTO journals (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), id, j.UserID, j.Title, j.Content, string(j.Mood), nullString(j.Analysis), j.IsPrivate, now, now)
	if err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}

	j.ID = id
	j.CreatedAt = now
	j.UpdatedAt = now
	return nil
}

func (r *SQLJournalRepository) ListByUser(ctx context.Context, userID string, since time.Time) ([]models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE user_id = ?`
	args := []interface{}{userID}
	if !since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, since.UTC())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := make([]models.Journal, 0)
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		journals = append(journals, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	return journals, nil
}

func (r *SQLJournalRepository) FindByID(ctx context.Context, id string) (*models.Journal, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`SELECT `+journalColumns+` FROM journals WHERE id = ?`), id)
	j, err := scanJournal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find journal: %w", err)
	}
	return j, nil
}

// Save writes the mutable columns of j. user_id and created_at are never rewritten.
func (r *SQLJournalRepository) Save(ctx context.Context, j *models.Journal) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx, r.rebind(`
		UPDATE journals
		SET title = ?, content = ?, mood = ?, analysis = ?, is_private = ?, updated_at = ?
		WHERE id = ?
	`), j.Title, j.Content, string(j.Mood), nullString(j.Analysis), j.IsPrivate, now, j.ID)
	if err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	j.UpdatedAt = now
	return nil
}

func (r *SQLJournalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM journals WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJournal(s rowScanner) (*models.Journal, error) {
	var (
		j        models.Journal
		mood     string
		analysis sql.NullString
	)
	if err := s.Scan(&j.ID, &j.UserID, &j.Title, &j.Content, &mood, &analysis, &j.IsPrivate, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	j.Mood = models.Mood(mood)
	if analysis.Valid {
		j.Analysis = &analysis.String
	}
	j.CreatedAt = j.CreatedAt.UTC()
	j.UpdatedAt = j.UpdatedAt.UTC()
	return &j, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
