package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into a 400 with a readable field message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("field %s failed on the %s rule", first.Field(), first.Tag()))
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
