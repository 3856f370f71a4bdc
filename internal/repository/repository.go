package repository

import (
	"context"
	"errors"

	"notes-api/internal/model"
)

var (
	// ErrNoteNotFound возвращается, когда заметка с указанным ID отсутствует
	ErrNoteNotFound = errors.New("note not found")
	// ErrDuplicateTitle возвращается при нарушении уникальности заголовка
	ErrDuplicateTitle = errors.New("duplicate note title")
)

// NoteRepository интерфейс для работы с заметками в хранилище
type NoteRepository interface {
	// Create сохраняет новую заметку и возвращает её с назначенным ID
	Create(ctx context.Context, note model.Note) (model.Note, error)

	// FindByTitle ищет заметку по точному совпадению заголовка.
	// Отсутствие заметки не является ошибкой: found == false
	FindByTitle(ctx context.Context, title string) (note model.Note, found bool, err error)

	// FindLastUpdated возвращает заметку с максимальным UpdatedAt
	FindLastUpdated(ctx context.Context) (note model.Note, found bool, err error)

	// ExistsByTitle проверяет наличие заметки с заголовком
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// List возвращает список всех заметок
	List(ctx context.Context) ([]model.Note, error)

	// Update перезаписывает title, text и updatedAt заметки с note.ID
	Update(ctx context.Context, note model.Note) (model.Note, error)

	// DeleteByTitle удаляет заметку по заголовку, отсутствие заметки не ошибка
	DeleteByTitle(ctx context.Context, title string) error
}

// TxFunc единица работы внутри транзакции
type TxFunc func(ctx context.Context, repo NoteRepository) error

// Transactor открывает транзакцию, фиксирует её при успехе fn и откатывает при ошибке или панике
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// Store хранилище заметок с поддержкой транзакций
type Store interface {
	NoteRepository
	Transactor

	Close() error
}
