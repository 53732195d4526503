package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nilehomes/landing/internal/pkg/apperr"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("urlorpath", func(fl validator.FieldLevel) bool {
		return IsURLOrPath(fl.Field().String())
	})
	_ = v.RegisterValidation("urlorpathorempty", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || IsURLOrPath(s)
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
	_ = v.RegisterValidation("emailorempty", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || v.Var(s, "email") == nil
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// IsURLOrPath accepts an absolute http(s) URL or a root-relative path.
func IsURLOrPath(s string) bool {
	if strings.HasPrefix(s, "/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsSlug reports whether s is a lowercase, hyphen-separated URL segment.
func IsSlug(s string) bool {
	return len(s) <= 255 && slugPattern.MatchString(s)
}

// Bind decodes the JSON body into dst and runs its binding rules.
func Bind(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return Translate(err)
	}
	return nil
}

// Decode reads the JSON body into dst without running binding rules.
func Decode(c *gin.Context, dst interface{}) error {
	if c.Request == nil || c.Request.Body == nil {
		return apperr.Invalid("body", "must be a valid JSON object")
	}
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		return Translate(err)
	}
	return nil
}

// Struct runs the binding rules of v outside of a request.
func Struct(v interface{}) error {
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate converts decoder and validator failures into *apperr.ValidationError.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &apperr.ValidationError{Fields: make([]apperr.FieldError, 0, len(verrs))}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, apperr.FieldError{
				Field:   fieldPath(fe),
				Message: message(fe),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.Invalid(field, "must be "+kindName(typeErr.Type.Kind()))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperr.Invalid("body", "must be a valid JSON object")
	}

	return apperr.Invalid("body", err.Error())
}

// kindName describes a JSON value shape without exposing Go type names.
func kindName(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	}
	return "of a different type"
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "email", "emailorempty":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "urlorpath", "urlorpathorempty":
		return "must be an http(s) URL or a path starting with /"
	case "slug":
		return "must contain only lowercase letters, digits and single hyphens"
	}
	return "is invalid"
}
