// AngelaMos | 2026
// validation.go

package core

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// NewValidator returns a validator that reports json field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// DecodeAndValidate reads a JSON body into dst and runs struct validation.
// The returned error is always an *AppError ready for JSONError.
func DecodeAndValidate(
	r *http.Request,
	v *validator.Validate,
	dst any,
) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		return ValidationError(FieldError{
			Field:   "body",
			Message: describeDecodeError(err),
		})
	}

	if err := v.Struct(dst); err != nil {
		return FromValidationError(err)
	}

	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return "invalid type for field " + typeErr.Field
	}

	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}

	return "malformed JSON: " + err.Error()
}

// PositiveIDParam parses a path parameter that must be an integer >= 1.
func PositiveIDParam(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ValidationError(FieldError{
			Field:   name,
			Message: "value is not a valid integer",
		})
	}

	if id < 1 {
		return 0, ValidationError(FieldError{
			Field:   name,
			Message: "must be greater than or equal to 1",
		})
	}

	return id, nil
}
