package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/alumnihub/internal/app/models"
)

// Custom binding tags
const (
	TagRole     = "role"
	TagNotBlank = "notblank"
)

var registerOnce sync.Once

// RegisterGinValidators installs the custom tags on gin's binding validator and
// makes field errors report JSON field names. Safe to call more than once.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}

	var err error
	registerOnce.Do(func() { err = Register(v) })
	return err
}

// Register adds the custom tags to v
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)

	if err := v.RegisterValidation(TagRole, validRole); err != nil {
		return err
	}
	return v.RegisterValidation(TagNotBlank, notBlank)
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// validRole accepts STUDENT, ALUMNI or ADMIN in any letter case
func validRole(fl validator.FieldLevel) bool {
	_, err := models.ParseRole(fl.Field().String())
	return err == nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
