package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so clients see the keys they sent.
	v.RegisterTagNameFunc(jsonName)

	return v
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// decodePayload fills dst (a pointer to a payload struct) from a JSON object
// and validates it. Every field is decoded on its own so that one bad value
// does not hide the others; the returned slice lists all of them.
func decodePayload(data []byte, dst any) ([]FieldError, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("body of request contained bad or no data")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("body of request contained bad or no data: %w", err)
	}
	if raw == nil {
		return nil, errors.New("body of request contained bad or no data")
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	var fieldErrs []FieldError
	bad := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		msg, ok := raw[name]
		if name == "" || !ok {
			continue
		}
		if err := json.Unmarshal(msg, v.Field(i).Addr().Interface()); err != nil {
			bad[name] = true
			fieldErrs = append(fieldErrs, FieldError{
				Field: name,
				Msg:   fmt.Sprintf("%s must be %s", name, kindName(t.Field(i).Type)),
			})
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			if bad[fe.Field()] {
				continue
			}
			fieldErrs = append(fieldErrs, FieldError{
				Field: fe.Field(),
				Msg:   fieldMessage(fe.Field(), fe.Tag(), fe.Param()),
			})
		}
	}

	return fieldErrs, nil
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice:
		return "a list"
	default:
		return "a string"
	}
}

func fieldMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed the %s check", field, tag)
	}
}

// HTTPTimeFormat is the layout used for updated_time on the wire.
const HTTPTimeFormat = http.TimeFormat

// FormatHTTPTime renders t as an HTTP-date in GMT.
func FormatHTTPTime(t time.Time) string {
	return t.UTC().Format(HTTPTimeFormat)
}

// ParseTimestamp accepts an HTTP-date (any of the three forms) or RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := http.ParseTime(s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UTC(), nil
}
