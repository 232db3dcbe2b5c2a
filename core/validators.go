package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/pkg/errors"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	requiredTag  = "required"
	requiredText = "{0} é obrigatório"
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Portuguese error messages for validation errors.
	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	Translator, _ = uni.GetTranslator("pt_BR")
	_ = pt_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use label tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("label"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	RegisterCustomTranslation(requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors returns one translated message per invalid field.
func TranslateErrors(err error) []string {
	var msgs []string

	var fErrs validator.ValidationErrors
	if errors.As(err, &fErrs) {
		for _, fe := range fErrs {
			msgs = append(msgs, fe.Translate(Translator))
		}
		return msgs
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		for _, fe := range vErr.Fields {
			msgs = append(msgs, fe.Error)
		}
	}
	if len(msgs) == 0 {
		msgs = append(msgs, err.Error())
	}
	return msgs
}
