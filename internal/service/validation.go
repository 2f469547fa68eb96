package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

var idNumberPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}$`)

// NewValidator returns a validator that reports JSON field names and knows the
// idnumber tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("idnumber", func(fl validator.FieldLevel) bool {
		return idNumberPattern.MatchString(fl.Field().String())
	})
	return v
}

// validIDNumber reports whether id has the NNNN-NNNN shape.
func validIDNumber(id string) bool {
	return idNumberPattern.MatchString(id)
}

// translateValidation maps validator failures onto reason codes. Missing
// required fields win over malformed ones so clients see every gap at once.
func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrInvalidPayload, "")
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return appErrors.WithDetails(appErrors.ErrMissingFields, map[string]interface{}{"fields": missing})
	}

	fe := verrs[0]
	return appErrors.Invalid(fe.Field(), describe(fe.Field(), fe))
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "idnumber":
		return field + " must look like NNNN-NNNN"
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param()
	case "email":
		return field + " must be a valid email address"
	default:
		return field + " is invalid"
	}
}

// fieldRule validates and converts one raw JSON value of a partial update.
type fieldRule func(v *validator.Validate, field string, raw interface{}) (interface{}, error)

func textRule(tag string) fieldRule {
	return func(v *validator.Validate, field string, raw interface{}) (interface{}, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, appErrors.Invalid(field, field+" must be a string")
		}
		if err := v.Var(s, tag); err != nil {
			return nil, varError(field, err)
		}
		return s, nil
	}
}

func intRule(tag string) fieldRule {
	return func(v *validator.Validate, field string, raw interface{}) (interface{}, error) {
		n, ok := toInt(raw)
		if !ok {
			return nil, appErrors.Invalid(field, field+" must be an integer")
		}
		if err := v.Var(n, tag); err != nil {
			return nil, varError(field, err)
		}
		return n, nil
	}
}

func varError(field string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Tag() == "required" {
			return appErrors.WithDetails(appErrors.ErrMissingFields, map[string]interface{}{"fields": []string{field}})
		}
		return appErrors.Invalid(field, describe(field, verrs[0]))
	}
	return appErrors.Invalid(field, "")
}

func toInt(raw interface{}) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

// cleanUpdates keeps the allow-listed keys of updates and validates each value
// with its rule. Unknown keys are dropped unless strict, in which case they
// are reported as invalid_fields.
func cleanUpdates(v *validator.Validate, rules map[string]fieldRule, allowed []string, updates map[string]interface{}, strict bool) (map[string]interface{}, error) {
	clean := make(map[string]interface{}, len(updates))
	var unknown []string
	for key := range updates {
		if !contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if strict && len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, appErrors.WithDetails(appErrors.ErrInvalidFields, map[string]interface{}{"fields": unknown})
	}

	for _, key := range allowed {
		raw, ok := updates[key]
		if !ok {
			continue
		}
		rule, ok := rules[key]
		if !ok {
			return nil, fmt.Errorf("no validation rule for %s", key)
		}
		value, err := rule(v, key, raw)
		if err != nil {
			return nil, err
		}
		clean[key] = value
	}
	return clean, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
