package service

import (
	"Mingle/models"
	"Mingle/pkg/apperr"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// 与 gin 共用 binding 标签，业务层再校验一次
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperr.Validation(describe(fieldErrs[0]))
	}
	return apperr.Validation(err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// NormalizeInterests 去空白、去空串、去重，保持首次出现的顺序
func NormalizeInterests(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ParseInterestFilter 解析逗号分隔的兴趣筛选参数
func ParseInterestFilter(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeInterests(strings.Split(raw, ","))
}

func checkInterests(tags []string) error {
	if len(tags) > models.ProfileInterestsMax {
		return apperr.Validationf("interests must contain at most %d tags", models.ProfileInterestsMax)
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > models.InterestTagMax {
			return apperr.Validationf("interest %q must be at most %d characters", tag, models.InterestTagMax)
		}
	}
	return nil
}
