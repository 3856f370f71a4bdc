package rest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"notes-api/internal/model"
)

var _ echo.Validator = (*requestValidator)(nil)

// requestValidator реализует echo.Validator поверх go-playground/validator
type requestValidator struct {
	validate *validator.Validate
}

// NewValidator создает валидатор запросов с правилом notblank и поддержкой model.Optional
func NewValidator() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В сообщениях используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// title - правила заголовка, длина берется из модели
	v.RegisterAlias("title", fmt.Sprintf("notblank,max=%d", model.MaxTitleLength))

	// Незаданное Optional проверяется как отсутствующее поле (omitempty).
	// Заданное отдается указателем, чтобы omitempty не пропускал пустую строку.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if o, ok := field.Interface().(model.Optional[string]); ok && o.Set {
			value := o.Value
			return &value
		}
		return nil
	}, model.Optional[string]{})

	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	// Для алиасов Tag() возвращает имя алиаса, а не сработавшее правило
	switch fe.ActualTag() {
	case "required", "notblank":
		return fmt.Sprintf("%s cannot be blank", fe.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.ActualTag())
	}
}
