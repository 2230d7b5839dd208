// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"maintenance-system/pkg/constants"
)

// RegisterCustomValidations регистрирует все кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("priority", isKnownPriority); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_type", isKnownOrderType); err != nil {
		return err
	}
	if err := v.RegisterValidation("room_code", isRoomCode); err != nil {
		return err
	}
	return nil
}

func isKnownPriority(fl validator.FieldLevel) bool {
	return constants.IsValidPriority(fl.Field().String())
}

func isKnownOrderType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, t := range constants.OrderTypes {
		if t == value {
			return true
		}
	}
	return false
}

// Код помещения: буквы, цифры и дефис, например "Z-101".
func isRoomCode(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)
	return re.MatchString(fl.Field().String())
}
