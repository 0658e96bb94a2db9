package spaces

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces/models"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// FieldError ошибка одного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors ошибки валидации запроса, errors.Is(err, ErrInvalidInput) == true
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, len(v))
	for i, e := range v {
		messages[i] = e.Field + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

func (v ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// Validator проверяет запросы на создание и изменение помещений
type Validator struct {
	validate *validator.Validate
}

// NewValidator регистрирует правила для времени "HH:MM" и окна работы дня
func NewValidator() (*Validator, error) {
	v := validator.New()

	if err := v.RegisterValidation("hhmm", validateTimeString); err != nil {
		return nil, fmt.Errorf("register hhmm: %w", err)
	}
	v.RegisterStructValidation(validateDayWindow, models.DayScheduleRequest{})

	return &Validator{validate: v}, nil
}

// Validate проверяет запрос
func (v *Validator) Validate(req *models.SpaceRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// validateTimeString "HH:MM", допускается "24:00"
// Пустое значение проверяет required_if
func validateTimeString(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || types.TimeString(value).Validate() == nil
}

// validateDayWindow открытие раньше закрытия, "24:00" только как закрытие
func validateDayWindow(sl validator.StructLevel) {
	day := sl.Current().Interface().(models.DayScheduleRequest)
	if !day.IsOpen || day.OpenTime == "" || day.CloseTime == "" {
		return
	}

	open := types.TimeString(day.OpenTime).Minutes()
	closeAt := types.TimeString(day.CloseTime).Minutes()
	if open < 0 || closeAt < 0 {
		return
	}

	if open >= types.MinutesPerDay {
		sl.ReportError(day.OpenTime, "OpenTime", "openTime", "open_before_end_of_day", "")
	}
	if closeAt <= open {
		sl.ReportError(day.CloseTime, "CloseTime", "closeTime", "close_after_open", "")
	}
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	result := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required", "required_if":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
		case "unique":
			message = fmt.Sprintf("%s contains duplicate %s", err.Field(), err.Param())
		case "hhmm":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		case "close_after_open":
			message = "closeTime must be after openTime"
		case "open_before_end_of_day":
			message = "openTime must be before 24:00"
		}

		result = append(result, FieldError{
			Field:   err.Namespace(),
			Message: message,
		})
	}

	return result
}
