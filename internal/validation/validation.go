package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/listings"
	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var rules = map[string]func(string) bool{
	"user_type":    users.IsValidType,
	"band_role":    bands.IsValidRole,
	"media_kind":   func(s string) bool { return s == media.KindImage || s == media.KindVideo },
	"listing_kind": listings.IsValidKind,
	"plan_family":  plans.IsValidFamily,
	"account_tier": isAnyTier,
}

func isAnyTier(s string) bool {
	for _, f := range []string{plans.FamilyTalent, plans.FamilyBackground, plans.FamilyBands} {
		if plans.IsValidTier(f, s) {
			return true
		}
	}
	return false
}

// Register adds the custom tags and makes errors report JSON field names.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	for tag, ok := range rules {
		check := ok
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true // "required" handles empties
			}
			return check(value)
		})
		if err != nil {
			return fmt.Errorf("register validation tag %q: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin installs the tags on gin's default binding engine.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return Register(v)
}

// Bind decodes the request into obj and turns binding failures into a
// VALIDATION_FAILED AppError with per-field messages.
func Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		return FromBindError(err)
	}
	return nil
}

func FromBindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("Invalid request body.")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return apperrors.Validation("Some fields are invalid.").WithDetails(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	}
	if _, custom := rules[fe.Tag()]; custom {
		return fmt.Sprintf("is not a valid %s", strings.ReplaceAll(fe.Tag(), "_", " "))
	}
	return "is invalid"
}
