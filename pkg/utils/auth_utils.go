package utils

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	apperrors "restaurant-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// CheckSecret сравнивает пароль с настроенным значением: bcrypt-хеш ($2a$, $2b$, $2y$) или открытый текст.
func CheckSecret(configured, given string) bool {
	if strings.HasPrefix(configured, "$2") {
		return ComparePasswords(configured, given) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperrors.NewInvalidInputError("некорректные поля: %s", strings.Join(fields, ", "))
}
