package courseValidator

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

const idTag = "entity_id"

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report errors under json names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(idTag, func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		return id != "" && len(id) <= 64 && !strings.ContainsAny(id, " /\\?#%")
	})
	_ = validate.RegisterTranslation(idTag, translator,
		func(ut ut.Translator) error {
			return ut.Add(idTag, "{0} is not a valid id", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(idTag, fe.Field())
			return msg
		},
	)
}

// check validates s and returns field errors keyed by json name.
func check(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Translate(translator)
	}
	return out
}
