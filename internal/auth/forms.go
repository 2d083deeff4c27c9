package auth

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kazino55/client/internal/api"
	"github.com/kazino55/client/internal/i18n"
)

// LoginForm is the login dialog's input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterForm is the full registration dialog's input.
type RegisterForm struct {
	Email           string `validate:"required,email"`
	Nickname        string `validate:"required"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	AgreeTerms      bool   `validate:"eq=true"`
	AgreeMarketing  bool
}

// messageKey maps a failed validation rule to its i18n message key.
func messageKey(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return "validate.email_required"
		}
		return "validate.email_invalid"
	case "Nickname":
		return "validate.nickname"
	case "Password":
		if fe.Tag() == "min" {
			return "validate.password_min"
		}
		return "validate.password"
	case "ConfirmPassword":
		if fe.Tag() == "eqfield" {
			return "validate.mismatch"
		}
		return "validate.confirm"
	case "AgreeTerms":
		return "validate.terms"
	}
	return "error.generic"
}

// fieldName returns the form field identifier used in Fields maps, matching
// the JSON casing the backend uses for its own field errors.
func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return "email"
	case "Nickname":
		return "nickname"
	case "Password":
		return "password"
	case "ConfirmPassword":
		return "confirmPassword"
	case "AgreeTerms":
		return "agreeTerms"
	}
	return fe.Field()
}

// validateForm runs struct validation and converts failures into a
// validation-kind *api.Error with one localized message per field.
// A nil return means the form passed.
func validateForm(v *validator.Validate, form any, lang string) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &api.Error{Kind: api.KindValidation, Message: i18n.T(lang, "error.generic")}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldName(fe)
		if _, taken := fields[name]; !taken {
			fields[name] = i18n.T(lang, messageKey(fe))
		}
	}
	return &api.Error{
		Kind:    api.KindValidation,
		Status:  http.StatusBadRequest,
		Message: i18n.T(lang, "error.generic"),
		Fields:  fields,
	}
}
