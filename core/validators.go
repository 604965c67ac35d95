package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	personNameTag   = "personname"
	personNameText  = "only letters, spaces, apostrophes and hyphens are allowed"
	personNameRegex = regexp.MustCompile(`^[\p{L}]+(?:[\s'-][\p{L}]+)*$`)

	// +256 775 123 456 or 0775-123-456
	ugPhoneTag   = "ugphone"
	ugPhoneText  = "enter a valid Ugandan phone number, e.g. +256 775 123 456 or 0775-123-456"
	ugPhoneRegex = regexp.MustCompile(`^(?:\+256\s?\d{3}|0\d{3})[\s-]?\d{3}[\s-]?\d{3}$`)

	nationalIDTag   = "nationalid"
	nationalIDText  = "enter a valid national ID, e.g. CM85001234567PE"
	nationalIDRegex = regexp.MustCompile(`^[A-Z]{2}\d{11,12}[A-Z]{0,2}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	dateTimeTag  = "datetime"
	dateTimeText = "{0} must be formatted as {1}"
)

// NewTranslator returns the English translator validation errors are reported with.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(personNameTag, personNameValidation)
	RegisterCustomTranslation(validate, translator, personNameTag, personNameText)

	_ = validate.RegisterValidation(ugPhoneTag, ugPhoneValidation)
	RegisterCustomTranslation(validate, translator, ugPhoneTag, ugPhoneText)

	_ = validate.RegisterValidation(nationalIDTag, nationalIDValidation)
	RegisterCustomTranslation(validate, translator, nationalIDTag, nationalIDText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)

	_ = validate.RegisterTranslation(
		dateTimeTag, translator,
		func(t ut.Translator) error { return t.Add(dateTimeTag, dateTimeText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(dateTimeTag, fe.Field(), humanLayout(fe.Param()))
			return s
		},
	)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors maps each failed field to its translated message.
func TranslateErrors(errs validator.ValidationErrors, translator ut.Translator) map[string]string {
	fldErrs := make(map[string]string, len(errs))
	for _, vErr := range errs {
		fldErrs[vErr.Field()] = vErr.Translate(translator)
	}
	return fldErrs
}

func humanLayout(layout string) string {
	switch layout {
	case "2006-01-02":
		return "YYYY-MM-DD"
	case "15:04":
		return "HH:MM"
	}
	return layout
}

// Custom Global Validators

// personNameValidation only allows letters, optionally separated by single spaces, apostrophes or hyphens.
func personNameValidation(fl validator.FieldLevel) bool {
	return personNameRegex.MatchString(fl.Field().String())
}

// ugPhoneValidation allows empty values; combine with `required` when needed.
func ugPhoneValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || ugPhoneRegex.MatchString(s)
}

// nationalIDValidation allows empty values; combine with `required` when needed.
func nationalIDValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || nationalIDRegex.MatchString(s)
}
