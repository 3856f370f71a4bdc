package rest

import "notes-api/internal/model"

// createNoteRequest тело POST /api/notes
type createNoteRequest struct {
	Title string `json:"title" validate:"required,title"`
	Text  string `json:"text"`
}

// updateNoteRequest тело PUT /api/notes/:title, оба поля перезаписываются
type updateNoteRequest struct {
	Title string `json:"title" validate:"required,title"`
	Text  string `json:"text"`
}

// patchNoteRequest тело PATCH /api/notes/:title, применяются только переданные поля
type patchNoteRequest struct {
	Title model.Optional[string] `json:"title" validate:"omitempty,title"`
	Text  model.Optional[string] `json:"text"`
}

func (r patchNoteRequest) toPatch() model.NotePatch {
	return model.NotePatch{Title: r.Title, Text: r.Text}
}
