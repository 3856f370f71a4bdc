package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength максимальная длина заголовка в символах
const MaxTitleLength = 40

// TimestampLayout формат временных меток в текстовом представлении
const TimestampLayout = "2006-01-02 15:04:05"

var (
	// ErrEmptyTitle возвращается, если заголовок пустой или состоит из пробелов
	ErrEmptyTitle = errors.New("title cannot be empty")
	// ErrTitleTooLong возвращается, если заголовок длиннее MaxTitleLength
	ErrTitleTooLong = fmt.Errorf("title cannot be longer than %d characters", MaxTitleLength)
)

// Note представляет заметку (доменная модель)
type Note struct {
	ID        int64     // Идентификатор, назначается хранилищем
	Title     string    // Уникальный заголовок заметки
	Text      string    // Текст заметки
	CreatedAt time.Time // Дата создания
	UpdatedAt time.Time // Дата последнего обновления
}

// NotePatch описывает частичное обновление: применяются только заданные поля
type NotePatch struct {
	Title Optional[string]
	Text  Optional[string]
}

// ValidateTitle проверяет заголовок заметки
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Validate проверяет валидность заметки
func (n *Note) Validate() error {
	return ValidateTitle(n.Title)
}

// IsEmpty проверяет, пуста ли заметка
func (n *Note) IsEmpty() bool {
	return n.ID == 0 && n.Title == "" && n.Text == ""
}

// Apply применяет частичное обновление к заметке
func (p NotePatch) Apply(n *Note) {
	if p.Title.Set {
		n.Title = p.Title.Value
	}
	if p.Text.Set {
		n.Text = p.Text.Value
	}
}
