// Package validation registers the domain binding tags on gin's validator.
package validation

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
)

// Register installs isodate, yearmonth, attstatus and weekday.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

// RegisterOn installs the tags on v.
func RegisterOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"isodate":   isoDate,
		"yearmonth": yearMonth,
		"attstatus": attStatus,
		"weekday":   weekday,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := period.ParseDate(fl.Field().String())
	return err == nil
}

func yearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

func attStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == model.StatusPresent || s == model.StatusAbsent
}

func weekday(fl validator.FieldLevel) bool {
	return period.ValidWeekday(fl.Field().String())
}
