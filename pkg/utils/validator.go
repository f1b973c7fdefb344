package utils

import (
	"errors"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// ProductCategories is the storefront's fixed category set.
var ProductCategories = []string{
	"Laptop",
	"Footwear",
	"Bottom",
	"Tops",
	"Attire",
	"Camera",
	"SmartPhones",
	"T-Shirts",
	"Hoodies",
	"Accessories",
}

var userRoles = []string{"customer", "admin"}

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return slices.Contains(userRoles, fl.Field().String())
	})
	_ = validate.RegisterValidation("password_bytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	_ = validate.RegisterValidation("product_category", func(fl validator.FieldLevel) bool {
		return slices.Contains(ProductCategories, fl.Field().String())
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationMessage flattens validator errors into a single client-facing message.
func ValidationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid input"
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "Please enter " + fe.Field()
	case "email":
		return "Please enter a valid email"
	case "min":
		return fe.Field() + " should have at least " + fe.Param() + " characters"
	case "max", "lte":
		return fe.Field() + " cannot exceed " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "user_role":
		return "Role must be customer or admin"
	case "password_bytes":
		return fe.Field() + " cannot exceed " + strconv.Itoa(MaxPasswordBytes) + " bytes"
	case "product_category":
		return "Please select a valid category"
	default:
		return "Invalid " + fe.Field()
	}
}
