package admin

import (
	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

type (
	Admin struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	NewAdmin struct {
		Username string `json:"username" validate:"required,min=3,max=20,alphanum_"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6,max=50"`
	}
)

func (na *NewAdmin) Clean() {
	na.Username = core.CleanString(na.Username)
	na.Email = core.CleanString(na.Email, true /* lower */)
}

func (na NewAdmin) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}
