// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"finance/internal/models"
)

var (
	clockMu sync.RWMutex
	clock   = time.Now
)

// Register registers all custom validators with the Gin binding engine. now
// decides which calendar day counts as today; nil keeps time.Now.
func Register(now func() time.Time) {
	if now != nil {
		clockMu.Lock()
		clock = now
		clockMu.Unlock()
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom tags and type functions on v.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("category_type", validateCategoryType)
	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("past_or_present_date", validatePastOrPresentDate)
	_ = v.RegisterValidation("future_date", validateFutureDate)
}

func today() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return models.DateOf(clock())
}

// decimalValue lets numeric tags such as gte=0.01 compare decimals.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func validatePastOrPresentDate(fl validator.FieldLevel) bool {
	d, err := models.ParseDate(fl.Field().String())
	return err == nil && !d.After(today())
}

func validateFutureDate(fl validator.FieldLevel) bool {
	d, err := models.ParseDate(fl.Field().String())
	return err == nil && d.After(today())
}
