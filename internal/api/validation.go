package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"billing_system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initValidation sync.Once

// InitValidation makes binding errors report JSON field names.
func InitValidation() {
	initValidation.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
	})
}

// errMalformedBody marks a request body that is not decodable JSON.
var errMalformedBody = errors.New("malformed request body")

// bindJSONObject decodes a JSON object body into obj and validates it. Bodies
// that are not an object, including null, count as malformed. The returned
// error is already classified by bindError.
func bindJSONObject(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return errMalformedBody
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '{' {
		return errMalformedBody
	}
	if err := binding.JSON.BindBody(body, obj); err != nil {
		return bindError(err)
	}
	return nil
}

// bindError classifies a ShouldBind failure: field problems become a
// *domain.ValidationError, anything else errMalformedBody.
func bindError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return domain.NewValidationError("%s", fieldMessage(ves[0]))
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return domain.NewValidationError("%s must be a valid %s", ute.Field, kindName(ute.Type))
	}
	return fmt.Errorf("%w: %v", errMalformedBody, err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	}
	return fe.Field() + " is invalid"
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	}
	return t.Kind().String()
}
