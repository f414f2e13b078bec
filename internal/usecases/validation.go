package usecases

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Validator checks request payloads before any store access.
type Validator struct {
	validate    *validator.Validate
	emailDomain string
	email       *regexp.Regexp
}

// NewValidator builds a validator accepting member emails on emailDomain.
func NewValidator(emailDomain string) *Validator {
	if emailDomain == "" {
		emailDomain = "gmail.com"
	}
	v := &Validator{
		validate:    validator.New(),
		emailDomain: emailDomain,
		email:       regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@` + regexp.QuoteMeta(emailDomain) + `$`),
	}
	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.validate.RegisterValidation("memberemail", func(fl validator.FieldLevel) bool {
		return v.email.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("skillcategory", func(fl validator.FieldLevel) bool {
		return entities.SkillCategory(fl.Field().String()).IsValid()
	})
	return v
}

// Struct validates s and reports every failing field in one error.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domainerrors.Validation("validation failed", err)
	}

	var combined error
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("%s %s", fieldPath(fe), v.message(fe))
		messages = append(messages, msg)
		combined = multierr.Append(combined, fmt.Errorf("%s", msg))
	}
	return domainerrors.Validation(strings.Join(messages, "; "), combined)
}

// Proficiency rejects levels outside 1..5.
func (v *Validator) Proficiency(field string, level int) error {
	if level < 1 || level > 5 {
		msg := fmt.Sprintf("%s must be between 1 and 5", field)
		return domainerrors.Validation(msg, fmt.Errorf("%s", msg))
	}
	return nil
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "memberemail":
		return fmt.Sprintf("must be a valid @%s address", v.emailDomain)
	case "phone10":
		return "must be exactly 10 digits"
	case "skillcategory":
		names := make([]string, 0, len(entities.SkillCategories))
		for _, c := range entities.SkillCategories {
			names = append(names, string(c))
		}
		return "must be one of " + strings.Join(names, ", ")
	}
	return "is invalid"
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// uniqueIDs reports the first id listed twice.
func uniqueIDs(field string, ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			msg := fmt.Sprintf("%s lists id %d more than once", field, id)
			return domainerrors.Validation(msg, fmt.Errorf("%s", msg))
		}
		seen[id] = struct{}{}
	}
	return nil
}

func levelIDs(levels []entities.RequirementLevel) []int64 {
	ids := make([]int64, 0, len(levels))
	for _, l := range levels {
		ids = append(ids, l.ID)
	}
	return ids
}
