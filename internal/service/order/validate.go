package order

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Permissive phone shape: digits, spaces, +, -, parentheses; 6-20 chars.
var phoneRe = regexp.MustCompile(`^[0-9+\-() ]{6,20}$`)

type fieldValidator struct {
	validate *validator.Validate
}

func newFieldValidator() *fieldValidator {
	v := validator.New()

	// Report errors under the json field names the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})

	return &fieldValidator{validate: v}
}

// customerFields validates every customer field independently and returns
// a field-keyed message map. Empty map means the customer block is valid.
func (fv *fieldValidator) customerFields(c CustomerInput) map[string]string {
	err := fv.validate.Struct(c)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["customer"] = "Invalid customer data"
		return fields
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "Required"
		case "max":
			fields[fe.Field()] = "Too long (max " + fe.Param() + " characters)"
		case "phone":
			fields[fe.Field()] = "Invalid phone number"
		default:
			fields[fe.Field()] = "Invalid value"
		}
	}
	return fields
}
