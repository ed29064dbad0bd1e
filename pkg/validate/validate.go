// Package validate checks records before they reach the ledger and reports
// every problem as a structured field error.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.String()
		}
		return nil
	}, models.Date{})

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("nodigits", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsDigit)
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("dateprefix", func(fl validator.FieldLevel) bool {
		return isDatePrefix(fl.Field().String())
	})

	return v
}

// isDatePrefix accepts a year, a year and month, or a full ISO date.
func isDatePrefix(s string) bool {
	for _, layout := range []string{"2006", "2006-01", models.DateLayout} {
		if len(s) != len(layout) {
			continue
		}
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is returned when a record fails validation.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates v against its `validate` tags.
func Struct(v interface{}) error {
	return translate(validate.Struct(v))
}

// Var validates a single value, e.g. a query parameter, against tag.
func Var(name string, value interface{}, tag string) error {
	err := translate(validate.Var(value, tag))
	var fields Errors
	if errors.As(err, &fields) {
		for i := range fields {
			fields[i].Field = name
			fields[i].Message = name + fields[i].Message
		}
		return fields
	}
	return err
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		out = append(out, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Message: field + fieldMessageSuffix(fe.Tag(), fe.Param()),
		})
	}
	return out
}

// fieldPath drops the struct name and embedded struct names from a namespace
// such as "ChequeBook.Instrument.accountTitle".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	kept := parts[:0]
	for _, p := range parts {
		if p == "Instrument" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

func fieldMessageSuffix(tag, param string) string {
	switch tag {
	case "required":
		return " is required"
	case "nodigits":
		return " must not contain digits"
	case "number":
		return " must contain digits only"
	case "len":
		return " must be " + param + " characters long"
	case "oneof":
		return " must be one of: " + param
	case "gte":
		return " must be at least " + param
	case "min":
		return " must be at least " + param
	case "max":
		return " must be at most " + param
	case "isodate":
		return " must be a date in YYYY-MM-DD form"
	case "dateprefix":
		return " must be a YYYY, YYYY-MM or YYYY-MM-DD date"
	}
	return " is invalid (" + tag + ")"
}
