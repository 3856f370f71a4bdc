package service

import (
	"context"
	"errors"

	"notes-api/internal/model"
)

var (
	// ErrNoteNotFound заметка с запрошенным заголовком отсутствует
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoteAlreadyExists заголовок уже занят другой заметкой
	ErrNoteAlreadyExists = errors.New("note already exists")
	// ErrInvalidNote входные данные заметки не прошли проверку
	ErrInvalidNote = errors.New("invalid note")
)

// NoteService интерфейс для бизнес-логики работы с заметками
type NoteService interface {
	// Create создает новую заметку с указанными title и text
	Create(ctx context.Context, title, text string) (model.Note, error)

	// List возвращает список всех заметок
	List(ctx context.Context) ([]model.Note, error)

	// GetByTitle возвращает заметку по заголовку
	GetByTitle(ctx context.Context, title string) (model.Note, error)

	// GetLast возвращает последнюю обновленную заметку
	GetLast(ctx context.Context) (model.Note, error)

	// Edit полностью перезаписывает title и text заметки с заголовком oldTitle
	Edit(ctx context.Context, oldTitle, newTitle, newText string) (model.Note, error)

	// Patch применяет только переданные поля к заметке с заголовком oldTitle
	Patch(ctx context.Context, oldTitle string, patch model.NotePatch) (model.Note, error)

	// Delete удаляет заметку по заголовку
	Delete(ctx context.Context, title string) error
}
