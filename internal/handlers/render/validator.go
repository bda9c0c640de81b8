package render

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osokin/authgate/internal/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report on the json tag name instead of the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// BindAndValidate decodes the JSON request body into T and validates it
// by struct tags. Error responses are written here; the caller only has
// to stop on a non-nil error.
func BindAndValidate[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		Error(w, apperrors.ErrJSONParse)
		return value, err
	}

	if err := validate.Struct(value); err != nil {
		Error(w, validationError(err))
		return value, err
	}

	return value, nil
}

// validationError maps validator failures to one 400 kind listing the
// offending fields, without exposing validator internals
func validationError(err error) *apperrors.Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.ErrInternal
	}

	fields := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		fields = append(fields, fieldError.Field())
	}

	return &apperrors.Error{
		Status:  http.StatusBadRequest,
		Message: "validation failed for: " + strings.Join(fields, ", "),
	}
}
