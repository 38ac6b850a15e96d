package auth

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const maxPasswordBytes = 72

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required, validation.RuneLength(1, 64)),
		validation.Field(&c.Password, validation.Required, validation.By(maxBytes(maxPasswordBytes))),
	)
}

func maxBytes(n int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > n {
			return fmt.Errorf("must be at most %d bytes long", n)
		}
		return nil
	}
}

func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
