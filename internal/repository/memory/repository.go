package memory

import (
	"context"
	"sort"
	"sync"

	"notes-api/internal/model"
	"notes-api/internal/repository"
)

var _ repository.Store = (*repo)(nil)

type repo struct {
	// txMu сериализует транзакции, mu защищает данные
	txMu sync.Mutex
	mu   sync.RWMutex

	nextID  int64
	notes   map[int64]model.Note
	byTitle map[string]int64
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map
func NewRepository() repository.Store {
	return &repo{
		notes:   make(map[int64]model.Note),
		byTitle: make(map[string]int64),
	}
}

// WithinTx выполняет fn эксклюзивно. При ошибке или панике данные
// восстанавливаются из снимка, сделанного до начала транзакции.
// Счетчик ID не откатывается, поэтому идентификаторы не переиспользуются.
func (r *repo) WithinTx(ctx context.Context, fn repository.TxFunc) (err error) {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	notes, byTitle := r.snapshot()
	defer func() {
		if p := recover(); p != nil {
			r.restore(notes, byTitle)
			panic(p)
		}
		if err != nil {
			r.restore(notes, byTitle)
		}
	}()

	return fn(ctx, r)
}

func (r *repo) snapshot() (map[int64]model.Note, map[string]int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make(map[int64]model.Note, len(r.notes))
	for id, n := range r.notes {
		notes[id] = n
	}
	byTitle := make(map[string]int64, len(r.byTitle))
	for title, id := range r.byTitle {
		byTitle[title] = id
	}
	return notes, byTitle
}

func (r *repo) restore(notes map[int64]model.Note, byTitle map[string]int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = notes
	r.byTitle = byTitle
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *repo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byTitle[note.Title]; taken {
		return model.Note{}, repository.ErrDuplicateTitle
	}

	r.nextID++
	note.ID = r.nextID

	r.notes[note.ID] = note
	r.byTitle[note.Title] = note.ID

	return note, nil
}

// FindByTitle возвращает заметку по заголовку
func (r *repo) FindByTitle(ctx context.Context, title string) (model.Note, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byTitle[title]
	if !exists {
		return model.Note{}, false, nil
	}

	return r.notes[id], true, nil
}

// FindLastUpdated возвращает последнюю обновленную заметку, при равенстве времени - с большим ID
func (r *repo) FindLastUpdated(ctx context.Context) (model.Note, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		last  model.Note
		found bool
	)
	for _, note := range r.notes {
		if !found || note.UpdatedAt.After(last.UpdatedAt) ||
			(note.UpdatedAt.Equal(last.UpdatedAt) && note.ID > last.ID) {
			last = note
			found = true
		}
	}

	return last, found, nil
}

// ExistsByTitle проверяет наличие заметки с заголовком
func (r *repo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byTitle[title]
	return exists, nil
}

// List возвращает список всех заметок, упорядоченный по ID
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })

	return notes, nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *repo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.notes[note.ID]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}

	if holder, taken := r.byTitle[note.Title]; taken && holder != note.ID {
		return model.Note{}, repository.ErrDuplicateTitle
	}

	// CreatedAt неизменяем
	note.CreatedAt = existing.CreatedAt

	delete(r.byTitle, existing.Title)
	r.byTitle[note.Title] = note.ID
	r.notes[note.ID] = note

	return note, nil
}

// DeleteByTitle удаляет заметку по заголовку
func (r *repo) DeleteByTitle(ctx context.Context, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.byTitle[title]
	if !exists {
		return nil
	}

	delete(r.byTitle, title)
	delete(r.notes, id)

	return nil
}

// Close ничего не делает: данные живут только в памяти процесса
func (r *repo) Close() error {
	return nil
}
