package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/idolbase/internal/application/dto"
	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// maxBodyBytes bounds request bodies. Import documents are the largest payloads.
const maxBodyBytes = 32 << 20

// newValidator returns a validator that reports JSON field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the request body into dst and runs struct validation.
// A malformed body is an InvalidArgument; tag failures become a ValidationError.
func decodeJSON(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domerrors.InvalidArgument("invalid request body")
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return toValidationError(verrs)
		}
		return domerrors.InvalidArgument("invalid request body")
	}
	return nil
}

func toValidationError(verrs validator.ValidationErrors) error {
	out := &domerrors.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), fieldMessage(fe))
	}
	return out.Err()
}

// fieldPath drops the root struct name: "groupRequest.positions[0].row" -> "positions[0].row".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url", "uri":
		return "must be a valid URL"
	}
	return "is invalid"
}

// parseUUID returns uuid.Nil for empty or malformed input; request validation rejects the latter first.
func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// dates parses date-only request fields, collecting failures into one ValidationError.
type dates struct {
	errs domerrors.ValidationError
}

// required leaves an empty value as the zero time so the entity reports it as missing.
func (d *dates) required(field, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dto.ParseDate(field, s)
	if err != nil {
		d.errs.Add(field, "must be a date in YYYY-MM-DD format")
	}
	return t
}

func (d *dates) optional(field string, s *string) *time.Time {
	t, err := dto.ParseDatePtr(field, s)
	if err != nil {
		d.errs.Add(field, "must be a date in YYYY-MM-DD format")
	}
	return t
}

func (d *dates) err() error { return d.errs.Err() }
