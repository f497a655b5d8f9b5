package email

import (
	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

// AllRecipients as Email.To sends the email to every account.
const AllRecipients = "all"

type Email struct {
	To      string `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required,max=10000"`
}

func (e *Email) Clean() {
	e.To = core.CleanString(e.To, true /* lower */)
	e.Subject = core.CleanString(e.Subject)
	e.Body = core.CleanString(e.Body)
}

func (e Email) Validate(validate *validator.Validate) error {
	if err := validate.Struct(e); err != nil {
		return err
	}
	if e.To != AllRecipients {
		return validate.Var(e.To, "email")
	}
	return nil
}
