package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

// ValidationErrorData represents the data field in the validation error response.
type ValidationErrorData struct {
	Errors []ValidationErrorDetail `json:"errors"`
}

var registerOnce sync.Once

// registerJSONNames makes validator report fields by their json (or form) tag
// so error details match what the client sent.
func registerJSONNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// BindAndValidate binds the JSON body into obj and validates it.
// On failure it writes a 400 response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	registerJSONNames()
	if err := c.ShouldBindJSON(obj); err != nil {
		writeValidationError(c, err)
		return false
	}
	return true
}

// BindQueryAndValidate is BindAndValidate for query string parameters.
func BindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	registerJSONNames()
	if err := c.ShouldBindQuery(obj); err != nil {
		writeValidationError(c, err)
		return false
	}
	return true
}

func writeValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Status:  http.StatusBadRequest,
		Message: "Invalid request parameters",
		Data:    ValidationErrorData{Errors: validationDetails(err)},
	})
}

func validationDetails(err error) []ValidationErrorDetail {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &fieldErrs):
		details := make([]ValidationErrorDetail, 0, len(fieldErrs))
		for _, e := range fieldErrs {
			details = append(details, fieldErrorDetail(e))
		}
		return details
	case errors.As(err, &typeErr):
		return []ValidationErrorDetail{{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		}}
	default:
		return []ValidationErrorDetail{{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
			Received: "invalid",
		}}
	}
}

func fieldErrorDetail(e validator.FieldError) ValidationErrorDetail {
	detail := ValidationErrorDetail{
		Field:    e.Field(),
		Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		Expected: e.Param(),
		Received: e.Value(),
	}
	if detail.Expected == "" {
		detail.Expected = e.Tag()
	}

	switch e.Tag() {
	case "required":
		detail.Message = fmt.Sprintf("Field '%s' is required", e.Field())
		detail.Expected = "not null"
	case "email":
		detail.Message = fmt.Sprintf("Field '%s' must be a valid email address", e.Field())
		detail.Expected = "email format"
	case "min":
		detail.Message = fmt.Sprintf("Field '%s' must be at least %s", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("min %s", e.Param())
	case "max":
		detail.Message = fmt.Sprintf("Field '%s' must be at most %s", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("max %s", e.Param())
	case "gt":
		detail.Message = fmt.Sprintf("Field '%s' must be greater than %s", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("> %s", e.Param())
	case "oneof":
		detail.Message = fmt.Sprintf("Field '%s' must be one of [%s]", e.Field(), e.Param())
		detail.Expected = strings.ReplaceAll(e.Param(), " ", "|")
	}
	return detail
}
