package bootstrap

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	pagePathPattern = regexp.MustCompile(`^/[a-z0-9\-/]*$`)
)

// RegisterValidators adds the MultiWeb binding tags to gin's validator:
// "slug" for project slugs and "pagepath" for page URL paths.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pagepath", func(fl validator.FieldLevel) bool {
		return pagePathPattern.MatchString(fl.Field().String())
	})
}
