// Package validate provides struct-tag validation for request bodies.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required   field must be present (non-zero; slices may be empty but not nil)
//	email      valid email address shape
//	min=N      string: minimum length | number: minimum value
//	max=N      string: maximum length | number: maximum value
//	numeric    value must be a number
//
// Example:
//
//	type SignupRequest struct {
//	    Username string `json:"username" validate:"required,min=3"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Password string `json:"password" validate:"required,min=6"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → message; an empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		value := rv.Field(i)

		for _, rule := range strings.Split(tag, ",") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors reports whether the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isAbsent(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if s, ok := asString(v); ok && !emailRe.MatchString(s) {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "min":
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return ""
		}
		if s, ok := asString(v); ok {
			if float64(len(s)) < n {
				return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
			}
		} else if f, ok := asNumber(v); ok && f < n {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "max":
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return ""
		}
		if s, ok := asString(v); ok {
			if float64(len(s)) > n {
				return fmt.Sprintf("The %s field may not be longer than %s characters.", field, param)
			}
		} else if f, ok := asNumber(v); ok && f > n {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "numeric":
		if _, ok := asNumber(v); ok {
			return ""
		}
		if s, ok := asString(v); ok {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return fmt.Sprintf("The %s field must be a number.", field)
			}
		}
	}

	return ""
}

// isAbsent implements the "required" semantics: zero strings and numbers are
// absent; slices and maps are absent only when nil, so an explicitly empty
// list still passes.
func isAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.IsNil()
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func asString(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

func asNumber(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// jsonFieldName resolves the reported name of a field from its json tag,
// falling back to the Go field name.
func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
