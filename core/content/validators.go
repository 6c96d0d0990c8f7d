package content

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/emellab/campus/core"
)

var (
	audienceTag  = "audience"
	audienceText = "{0} must be one of: " + joinValues(Audiences)

	levelTag  = "level"
	levelText = "{0} must be one of: " + joinValues(Levels)

	admissionStatusTag  = "admission_status"
	admissionStatusText = "{0} must be one of: " + joinValues(AdmissionStatuses)
)

// InitValidators registers the enum validators of the content models.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(audienceTag, audienceValidation)
	core.RegisterCustomTranslation(validate, translator, audienceTag, audienceText)

	_ = validate.RegisterValidation(levelTag, levelValidation)
	core.RegisterCustomTranslation(validate, translator, levelTag, levelText)

	_ = validate.RegisterValidation(admissionStatusTag, admissionStatusValidation)
	core.RegisterCustomTranslation(validate, translator, admissionStatusTag, admissionStatusText)
}

func joinValues[E ~string](values []E) string {
	s := make([]string, 0, len(values))
	for _, v := range values {
		s = append(s, string(v))
	}
	return strings.Join(s, ", ")
}

// Custom Validators

func audienceValidation(fl validator.FieldLevel) bool {
	return Audience(fl.Field().String()).IsValid()
}

func levelValidation(fl validator.FieldLevel) bool {
	return Level(fl.Field().String()).IsValid()
}

func admissionStatusValidation(fl validator.FieldLevel) bool {
	return AdmissionStatus(fl.Field().String()).IsValid()
}
