package reward

import (
	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

type (
	Reward struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Thumbnail string `json:"thumbnail"`
	}

	NewReward struct {
		Name      string `json:"name" validate:"required,max=100"`
		Thumbnail string `json:"thumbnail" validate:"required"`
	}

	// UpdateReward holds the fields to change; empty fields are left untouched.
	UpdateReward struct {
		Name      string `json:"name" validate:"omitempty,max=100"`
		Thumbnail string `json:"thumbnail"`
	}
)

func (nr *NewReward) Clean() {
	nr.Name = core.CleanString(nr.Name)
	nr.Thumbnail = core.CleanString(nr.Thumbnail)
}

func (nr NewReward) Validate(validate *validator.Validate) error {
	return validate.Struct(nr)
}

func (ur *UpdateReward) Clean() {
	ur.Name = core.CleanString(ur.Name)
	ur.Thumbnail = core.CleanString(ur.Thumbnail)
}

func (ur UpdateReward) Validate(validate *validator.Validate) error {
	return validate.Struct(ur)
}
