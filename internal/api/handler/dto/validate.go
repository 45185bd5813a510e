package dto

import (
	"errors"
	"reflect"
	"strings"

	"crm-admin/internal/pkg/apperrors"
	"crm-admin/internal/pkg/textnorm"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag = "notblank"
	taxIDTag    = "taxid"
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names rather than Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(taxIDTag, taxID)

	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, taxIDTag} {
		_ = validate.RegisterTranslation(tag, translator, noop, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case taxIDTag:
		return fe.Field() + " must be a valid 9-digit ΑΦΜ"
	}
	return fe.Error()
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

// taxID accepts an empty value; a non-empty one must reduce to a valid ΑΦΜ.
func taxID(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if strings.TrimSpace(s) == "" {
		return true
	}
	return textnorm.ValidTaxID(textnorm.TaxID(s))
}

// Validate checks v against its struct tags and reports the first violation as
// an apperrors.ValidationError keyed by the JSON path of the field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}
	fe := vErrs[0]
	return apperrors.NewValidationError(fieldPath(fe), fe.Translate(translator))
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "SubmitFormRequest.contacts[0].email" -> "contacts[0].email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
