package rest

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"notes-api/internal/converter"
	svc "notes-api/internal/service"
)

// Handler реализует HTTP API заметок
type Handler struct {
	noteService svc.NoteService
}

// NewHandler создает новый экземпляр HTTP хэндлера
func NewHandler(noteService svc.NoteService) *Handler {
	return &Handler{
		noteService: noteService,
	}
}

// Setup настраивает валидацию и обработку ошибок echo и регистрирует маршруты
func Setup(e *echo.Echo, h *Handler) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler
	h.Register(e)
}

// Register регистрирует маршруты API
func (h *Handler) Register(e *echo.Echo) {
	notes := e.Group("/api/notes")
	notes.GET("", h.ListNotes)
	notes.POST("", h.CreateNote)
	notes.GET("/:title", h.GetNote)
	notes.PUT("/:title", h.UpdateNote)
	notes.PATCH("/:title", h.PatchNote)
	notes.DELETE("/:title", h.DeleteNote)

	e.GET("/api/last-note", h.GetLastNote)
	e.GET("/healthz", h.Healthz)
}

// ListNotes возвращает список всех заметок
func (h *Handler) ListNotes(c echo.Context) error {
	notes, err := h.noteService.List(c.Request().Context())
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, converter.ModelsToResponses(notes))
}

// GetNote возвращает заметку по заголовку
func (h *Handler) GetNote(c echo.Context) error {
	title, err := titleParam(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.GetByTitle(c.Request().Context(), title)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, converter.ModelToResponse(note))
}

// GetLastNote возвращает последнюю обновленную заметку
func (h *Handler) GetLastNote(c echo.Context) error {
	note, err := h.noteService.GetLast(c.Request().Context())
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, converter.ModelToResponse(note))
}

// CreateNote создает новую заметку
func (h *Handler) CreateNote(c echo.Context) error {
	var req createNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.Create(c.Request().Context(), req.Title, req.Text)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusCreated, converter.ModelToResponse(note))
}

// UpdateNote полностью перезаписывает заметку
func (h *Handler) UpdateNote(c echo.Context) error {
	oldTitle, err := titleParam(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.Edit(c.Request().Context(), oldTitle, req.Title, req.Text)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, converter.ModelToResponse(note))
}

// PatchNote обновляет только переданные поля заметки
func (h *Handler) PatchNote(c echo.Context) error {
	oldTitle, err := titleParam(c)
	if err != nil {
		return err
	}

	var req patchNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.Patch(c.Request().Context(), oldTitle, req.toPatch())
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, converter.ModelToResponse(note))
}

// DeleteNote удаляет заметку по заголовку
func (h *Handler) DeleteNote(c echo.Context) error {
	title, err := titleParam(c)
	if err != nil {
		return err
	}

	if err := h.noteService.Delete(c.Request().Context(), title); err != nil {
		return handleError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Healthz проверка живости
func (h *Handler) Healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// bindAndValidate разбирает тело запроса и проверяет его до вызова сервиса
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return validationError(err)
	}
	return nil
}

// titleParam возвращает декодированный заголовок из пути.
// Если запрос пришел с RawPath, echo отдает параметр в экранированном виде.
func titleParam(c echo.Context) (string, error) {
	raw := c.Param("title")
	if c.Request().URL.RawPath == "" {
		return raw, nil
	}

	title, err := url.PathUnescape(raw)
	if err != nil {
		return "", validationError(fmt.Errorf("invalid title in path: %w", err))
	}
	return title, nil
}
