package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"notes-api/internal/model"
	"notes-api/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// querier общий интерфейс *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store репозиторий заметок поверх SQLite
type Store struct {
	queries
	db *sql.DB
}

// NewStore создает репозиторий поверх открытой базы
func NewStore(db *sql.DB) *Store {
	return &Store{queries: queries{q: db}, db: db}
}

// WithinTx выполняет fn в транзакции. Транзакция откатывается при ошибке
// или панике fn и фиксируется в остальных случаях.
func (s *Store) WithinTx(ctx context.Context, fn repository.TxFunc) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(ctx, &queries{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close закрывает базу
func (s *Store) Close() error {
	return s.db.Close()
}

type queries struct {
	q querier
}

const noteColumns = `id, title, text, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (model.Note, error) {
	var (
		note                 model.Note
		createdAt, updatedAt int64
	)
	if err := row.Scan(&note.ID, &note.Title, &note.Text, &createdAt, &updatedAt); err != nil {
		return model.Note{}, err
	}
	note.CreatedAt = time.Unix(0, createdAt)
	note.UpdatedAt = time.Unix(0, updatedAt)
	return note, nil
}

func (r *queries) Create(ctx context.Context, note model.Note) (model.Note, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO notes (title, text, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		note.Title, note.Text, note.CreatedAt.UnixNano(), note.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return model.Note{}, translate(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Note{}, fmt.Errorf("last insert id: %w", err)
	}
	note.ID = id

	return note, nil
}

func (r *queries) FindByTitle(ctx context.Context, title string) (model.Note, bool, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE title = ?`, title)
	return findOne(row)
}

func (r *queries) FindLastUpdated(ctx context.Context) (model.Note, bool, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes ORDER BY updated_at DESC, id DESC LIMIT 1`)
	return findOne(row)
}

func findOne(row *sql.Row) (model.Note, bool, error) {
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, false, nil
	}
	if err != nil {
		return model.Note{}, false, err
	}
	return note, true, nil
}

func (r *queries) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM notes WHERE title = ?)`, title,
	).Scan(&exists)
	return exists, err
}

func (r *queries) List(ctx context.Context) ([]model.Note, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *queries) Update(ctx context.Context, note model.Note) (model.Note, error) {
	row := r.q.QueryRowContext(ctx,
		`UPDATE notes SET title = ?, text = ?, updated_at = ? WHERE id = ? RETURNING `+noteColumns,
		note.Title, note.Text, note.UpdatedAt.UnixNano(), note.ID,
	)

	updated, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, repository.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, translate(err)
	}

	return updated, nil
}

func (r *queries) DeleteByTitle(ctx context.Context, title string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM notes WHERE title = ?`, title)
	return err
}

// translate заменяет нарушение уникальности заголовка на repository.ErrDuplicateTitle
func translate(err error) error {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%w: %v", repository.ErrDuplicateTitle, err)
	case sqlite3.SQLITE_CONSTRAINT:
		if strings.Contains(se.Error(), "UNIQUE") {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateTitle, err)
		}
	}
	return err
}
