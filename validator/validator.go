package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"restaurante360/constants"
	apperrors "restaurante360/errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// Validator wraps go-playground/validator with Portuguese messages and the
// domain tags (shift, role, category, frequency, isodate).
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default returns the process wide validator.
func Default() *Validator {
	defaultOnce.Do(func() {
		v, err := New()
		if err != nil {
			panic(err)
		}
		defaultV = v
	})
	return defaultV
}

func New() (*Validator, error) {
	validate := validator.New()
	validate.SetTagName("binding")
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := pt_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	custom := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{"shift", oneOf(constants.Shifts), "{0} deve ser um turno válido (Manhã, Tarde ou Noite)"},
		{"role", oneOf(constants.Roles), "{0} deve ser uma função válida"},
		{"category", oneOf(constants.Categories), "{0} deve ser uma categoria válida"},
		{"frequency", oneOf(constants.Frequencies), "{0} deve ser uma frequência válida"},
		{"isodate", isoDate, "{0} deve estar no formato AAAA-MM-DD"},
	}
	for _, c := range custom {
		if err := validate.RegisterValidation(c.tag, c.fn); err != nil {
			return nil, err
		}
		message := c.message
		tag := c.tag
		err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			})
		if err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s and returns a VALIDATION_ERROR AppError with translated
// messages when it fails.
func (v *Validator) Struct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return v.AsAppError(err)
	}
	return nil
}

// Var validates a single value against a tag list.
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// Translate renders a validation error as a single Portuguese sentence list.
func (v *Validator) Translate(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(v.trans))
	}
	return strings.Join(msgs, "; ")
}

// AsAppError converts binding and validation failures into AppErrors.
func (v *Validator) AsAppError(err error) *apperrors.AppError {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, v.Translate(err), err)
	}
	return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Formato da requisição inválido", err)
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return constants.Contains(values, s)
	}
}

func isoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(constants.DateLayout, s)
	return err == nil
}

// ginValidator plugs the validator into gin's ShouldBind* calls.
type ginValidator struct {
	v *Validator
}

// RegisterWithGin makes gin bind requests through v.
func RegisterWithGin(v *Validator) {
	binding.Validator = &ginValidator{v: v}
}

func (g *ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		if value.Elem().Kind() != reflect.Struct {
			return g.ValidateStruct(value.Elem().Interface())
		}
		return g.v.validate.Struct(obj)
	case reflect.Struct:
		return g.v.validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := g.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func (g *ginValidator) Engine() any {
	return g.v.validate
}
