package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/agency-site-backend/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
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

// Validate checks a payload against its validate tags and the decoding state of its Encoded
// fields. Every violated field is returned at once as a 400 validation error.
func Validate(payload any) error {
	if n, ok := payload.(interface{ normalize() }); ok {
		n.normalize()
	}

	var fields []errs.FieldError
	if err := validate.Struct(payload); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errs.NewBadRequestError(err.Error())
		}
		for _, fe := range verrs {
			fields = append(fields, errs.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}
	fields = append(fields, encodedFieldErrors(payload)...)

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s items", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	}
	return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
}

// encodedFieldErrors reports Encoded fields that failed to decode, and those tagged
// `encoded:"required"` that were not supplied.
func encodedFieldErrors(payload any) []errs.FieldError {
	rv := reflect.Indirect(reflect.ValueOf(payload))
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var out []errs.FieldError
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		ef, ok := rv.Field(i).Interface().(encodedField)
		if !ok {
			continue
		}
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		switch {
		case ef.Invalid():
			out = append(out, errs.FieldError{Field: name, Message: fmt.Sprintf("%s could not be decoded", name)})
		case !ef.Set() && sf.Tag.Get("encoded") == "required":
			out = append(out, errs.FieldError{Field: name, Message: fmt.Sprintf("%s is required", name)})
		}
	}
	return out
}
