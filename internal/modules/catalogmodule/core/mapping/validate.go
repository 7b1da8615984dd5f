package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance returns the shared validator. Field errors are reported
// under their JSON names.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks rules' struct tags. Fields named in except are skipped.
// The first failure becomes a validation CatalogError naming the field.
func Validate(op string, rules interface{}, except ...string) error {
	var err error
	if len(except) > 0 {
		err = validatorInstance().StructExcept(rules, except...)
	} else {
		err = validatorInstance().Struct(rules)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return catalogerrors.InternalError(op, err)
	}

	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return catalogerrors.MissingField(op, fe.Field())
	}

	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return catalogerrors.ValidationError(op, fmt.Errorf("%w: failed %s", catalogerrors.ErrInvalidInput, rule)).
		WithField(fe.Field()).
		WithDetail("rule", rule)
}
