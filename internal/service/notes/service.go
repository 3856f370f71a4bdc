package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notes-api/internal/model"
	"notes-api/internal/repository"
	svc "notes-api/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	store repository.Store
	now   func() time.Time
}

// Option настраивает сервис
type Option func(*service)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(store repository.Store, opts ...Option) svc.NoteService {
	s := &service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create создает новую заметку с указанными title и text
func (s *service) Create(ctx context.Context, title, text string) (model.Note, error) {
	now := s.now()
	note := model.Note{
		Title:     title,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := note.Validate(); err != nil {
		return model.Note{}, invalid(err)
	}

	var created model.Note
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
		var err error
		created, err = repo.Create(ctx, note)
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return alreadyExists(title)
		}
		return err
	})
	if err != nil {
		return model.Note{}, err
	}

	return created, nil
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
		var err error
		notes, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// GetByTitle возвращает заметку по заголовку
func (s *service) GetByTitle(ctx context.Context, title string) (model.Note, error) {
	var note model.Note
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
		var err error
		note, err = findExisting(ctx, repo, title)
		return err
	})
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// GetLast возвращает последнюю обновленную заметку
func (s *service) GetLast(ctx context.Context) (model.Note, error) {
	var note model.Note
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
		last, found, err := repo.FindLastUpdated(ctx)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: there are no notes yet", svc.ErrNoteNotFound)
		}
		note = last
		return nil
	})
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// Edit полностью перезаписывает title и text заметки
func (s *service) Edit(ctx context.Context, oldTitle, newTitle, newText string) (model.Note, error) {
	return s.mutate(ctx, oldTitle, func(note *model.Note) {
		note.Title = newTitle
		note.Text = newText
	})
}

// Patch обновляет только переданные поля заметки
func (s *service) Patch(ctx context.Context, oldTitle string, patch model.NotePatch) (model.Note, error) {
	return s.mutate(ctx, oldTitle, patch.Apply)
}

// mutate общий путь изменения: проверка существования, изменение полей,
// проверка результата и обновление updatedAt в одной транзакции
func (s *service) mutate(ctx context.Context, oldTitle string, change func(*model.Note)) (model.Note, error) {
	var updated model.Note
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
		note, err := findExisting(ctx, repo, oldTitle)
		if err != nil {
			return err
		}

		change(&note)
		if err := note.Validate(); err != nil {
			return invalid(err)
		}
		note.UpdatedAt = s.touch(note.UpdatedAt)

		updated, err = repo.Update(ctx, note)
		switch {
		case errors.Is(err, repository.ErrDuplicateTitle):
			return alreadyExists(note.Title)
		case errors.Is(err, repository.ErrNoteNotFound):
			// заметку удалили между чтением и записью
			return notFound(oldTitle)
		}
		return err
	})
	if err != nil {
		return model.Note{}, err
	}

	return updated, nil
}

// Delete удаляет заметку по заголовку
func (s *service) Delete(ctx context.Context, title string) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
		exists, err := repo.ExistsByTitle(ctx, title)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: cannot delete, note with title %q does not exist", svc.ErrNoteNotFound, title)
		}
		return repo.DeleteByTitle(ctx, title)
	})
}

// touch возвращает новое значение updatedAt, строго большее предыдущего
func (s *service) touch(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func findExisting(ctx context.Context, repo repository.NoteRepository, title string) (model.Note, error) {
	note, found, err := repo.FindByTitle(ctx, title)
	if err != nil {
		return model.Note{}, err
	}
	if !found {
		return model.Note{}, notFound(title)
	}
	return note, nil
}

func notFound(title string) error {
	return fmt.Errorf("%w: note with title %q does not exist", svc.ErrNoteNotFound, title)
}

func alreadyExists(title string) error {
	return fmt.Errorf("%w: note with title %q already exists", svc.ErrNoteAlreadyExists, title)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", svc.ErrInvalidNote, err)
}
