// Package validation проверяет входные данные операций с бронированиями
// и переводит ошибки go-playground/validator в список ошибок по полям.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

// FieldError ошибка одного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors список ошибок по полям
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, len(e))
	for i, fe := range e {
		messages[i] = fe.Error()
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e), strings.Join(messages, "; "))
}

// OptionInput предложенный вариант в запросе
type OptionInput struct {
	Date      string `validate:"nonblank,bookingdate"`
	StartTime string `validate:"nonblank"`
	EndTime   string `validate:"nonblank"`
}

// Validator валидатор запросов
type Validator struct {
	validate   *validator.Validate
	maxOptions int
}

// New создает валидатор; maxOptions ограничивает размер набора вариантов (0 - без ограничения)
func New(maxOptions int) *Validator {
	v := validator.New()

	// Регистрация встроенных правил не может завершиться ошибкой для корректных имен тегов
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.TrimSpace(s) == "" {
			return true
		}
		_, err := ParseDate(s)
		return err == nil
	})

	return &Validator{
		validate:   v,
		maxOptions: maxOptions,
	}
}

// Struct валидирует структуру по тегам
// Возвращает Errors или nil
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	result := make(Errors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		result = append(result, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return result
}

// Options проверяет ограничение размера набора и строит варианты со свежими ID
func (v *Validator) Options(inputs []OptionInput) ([]domain.BookingOption, error) {
	if len(inputs) == 0 {
		return nil, Errors{{Field: "options", Message: "must contain at least 1 option"}}
	}
	if v.maxOptions > 0 && len(inputs) > v.maxOptions {
		return nil, Errors{{Field: "options", Message: fmt.Sprintf("must contain at most %d options", v.maxOptions)}}
	}

	options := make([]domain.BookingOption, len(inputs))
	for i, in := range inputs {
		date, err := ParseDate(in.Date)
		if err != nil {
			return nil, Errors{{Field: fmt.Sprintf("options[%d].date", i), Message: "must be a date in YYYY-MM-DD format"}}
		}
		options[i] = domain.BookingOption{
			ID:        uuid.New(),
			Position:  i,
			Date:      date,
			StartTime: strings.TrimSpace(in.StartTime),
			EndTime:   strings.TrimSpace(in.EndTime),
		}
	}
	return options, nil
}

// ParseDate принимает дату "2006-01-02" или метку времени RFC3339 (берется календарная дата)
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(domain.DateFormat, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// fieldPath превращает "Request.Options[0].StartTime" в "options[0].startTime"
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToLower(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonblank":
		return "is required"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "bookingdate":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
