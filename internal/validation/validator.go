package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"subsmanager-miniapp/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("billing_cycle", validateBillingCycle)
	_ = v.RegisterValidation("subscription_category", validateSubscriptionCategory)
	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("price", validatePrice)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s against its validate tags
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Custom validation functions

// validateBillingCycle accepts weekly, monthly, quarterly and yearly
func validateBillingCycle(fl validator.FieldLevel) bool {
	return models.BillingCycle(fl.Field().String()).Valid()
}

func validateSubscriptionCategory(fl validator.FieldLevel) bool {
	return models.IsKnownCategory(fl.Field().String())
}

// validateISODate accepts YYYY-MM-DD. An empty value passes so the rule can
// follow required_if.
func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

// validatePrice accepts numbers and numeric strings that are not negative.
// Free subscriptions are priced at zero.
func validatePrice(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() >= 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() >= 0
	case reflect.String:
		price, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !price.IsNegative()
	default:
		return false
	}
}

var fieldMessages = map[string]string{
	"required":              "Обязательное поле",
	"required_if":           "Обязательное поле",
	"max":                   "Слишком длинное значение",
	"price":                 "Укажите цену числом",
	"billing_cycle":         "Неизвестный период оплаты",
	"subscription_category": "Неизвестная категория",
	"iso_date":              "Дата в формате ГГГГ-ММ-ДД",
}

// FieldErrors maps each failed field to a message the form shows next to it.
// Errors that are not validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Некорректное значение"
		}
		out[fe.Field()] = msg
	}
	return out
}
