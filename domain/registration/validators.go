package registration

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Patterns match the landing-page form rules: names are letters only (Latin or
// Cyrillic), phones are digits plus common separators, telegram handles are at
// least five word characters with an optional leading @.
var (
	namePattern     = regexp.MustCompile(`^[A-Za-z\p{Cyrillic}]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9+()\-\s]{5,}$`)
	telegramPattern = regexp.MustCompile(`^@?\w{5,}$`)
)

var registerValidatorsOnce sync.Once

// RegisterCustomValidators installs the registration field validators into
// gin's binding engine. Safe to call from every controller mount.
func RegisterCustomValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return namePattern.MatchString(fl.Field().String())
		})
		v.RegisterValidation("phonenumber", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		v.RegisterValidation("tghandle", func(fl validator.FieldLevel) bool {
			return telegramPattern.MatchString(fl.Field().String())
		})
	})
}
