package converter

import (
	"time"

	"notes-api/internal/model"
)

// NoteResponse представление заметки в HTTP API
type NoteResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FormatTimestamp форматирует время в model.TimestampLayout, нулевое время - пустая строка
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.TimestampLayout)
}

// ModelToResponse конвертирует domain модель Note в HTTP ответ
func ModelToResponse(note model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Text:      note.Text,
		CreatedAt: FormatTimestamp(note.CreatedAt),
		UpdatedAt: FormatTimestamp(note.UpdatedAt),
	}
}

// ModelsToResponses конвертирует слайс domain моделей, nil превращается в пустой слайс
func ModelsToResponses(notes []model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ModelToResponse(note)
	}

	return responses
}
