// Package validation проверяет входящие запросы с помощью go-playground/validator.
//
// Валидатор создается один раз и кэширует описание структур.
// Помимо встроенных правил регистрируется правило attribute, которое
// принимает только имена из models.Attributes.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError описывает ошибку проверки одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error объединяет ошибки проверки полей запроса.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// Get возвращает общий экземпляр валидатора.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		if err := validate.RegisterValidation("attribute", validateAttribute); err != nil {
			panic(fmt.Sprintf("validation: failed to register attribute rule: %v", err))
		}
	})
	return validate
}

func validateAttribute(fl validator.FieldLevel) bool {
	_, err := models.ParseAttribute(fl.Field().String())
	return err == nil
}

// Struct проверяет структуру запроса. Возвращает *Error при нарушении правил.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translate(fe),
		}
	}
	return &Error{Fields: fields}
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must contain exactly %s items", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must be unique", field)
	case "attribute":
		return fmt.Sprintf("%s has unknown attribute %q", field, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
