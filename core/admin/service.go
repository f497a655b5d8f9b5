package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

var ErrNotFound = errors.New("admin not found")

type (
	// Repository stores the admin profiles, keyed by identity uid.
	Repository interface {
		QueryAdmins(ctx context.Context) ([]Admin, error)
		GetAdmin(ctx context.Context, uid string) (Admin, error)
		CreateAdmin(ctx context.Context, a Admin) error
		DeleteAdmin(ctx context.Context, uid string) error
	}

	ServiceInterface interface {
		QueryAll(ctx context.Context) ([]Admin, error)
		GetByID(ctx context.Context, uid string) (Admin, error)
		Create(ctx context.Context, na NewAdmin) (Admin, error)
		Delete(ctx context.Context, actorID, uid string) error
	}

	Service struct {
		repo       Repository
		identities core.IdentityProvider
		validate   *validator.Validate
		logger     core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, identities core.IdentityProvider, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{repo: repo, identities: identities, validate: validate, logger: logger}
}

// QueryAll lists the admin profiles along with their sign-in email.
func (svc *Service) QueryAll(ctx context.Context) ([]Admin, error) {
	admins, err := svc.repo.QueryAdmins(ctx)
	if err != nil {
		return nil, core.NewInternalError(err, "Failed to get admins")
	}
	for i, a := range admins {
		idt, err := svc.identities.GetUser(ctx, a.ID)
		if err != nil {
			if errors.Is(err, core.ErrNoIdentity) {
				continue
			}
			return nil, core.NewInternalError(err, "Failed to get admin email")
		}
		admins[i].Email = idt.Email
	}
	return admins, nil
}

// GetByID returns the admin profile of uid; a uid without one is NOT_FOUND.
func (svc *Service) GetByID(ctx context.Context, uid string) (Admin, error) {
	a, err := svc.repo.GetAdmin(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Admin{}, core.NewNotFoundError("Admin not found")
		}
		return Admin{}, core.NewInternalError(err, "Failed to check if user is admin")
	}
	return a, nil
}

// Create registers the account with the identity provider, then stores the admin profile.
func (svc *Service) Create(ctx context.Context, na NewAdmin) (Admin, error) {
	na.Clean()
	if err := na.Validate(svc.validate); err != nil {
		return Admin{}, err
	}

	idt, err := svc.identities.CreateUser(ctx, na.Email, na.Password, na.Username)
	if err != nil {
		if errors.Is(err, core.ErrEmailExists) {
			return Admin{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return Admin{}, core.NewInternalError(err, "Failed to create admin account")
	}

	a := Admin{ID: idt.UID, Username: na.Username, Email: idt.Email}
	if err := svc.repo.CreateAdmin(ctx, a); err != nil {
		if dErr := svc.identities.DeleteUser(ctx, idt.UID); dErr != nil {
			svc.logger.Error(fmt.Sprintf("account %s left without an admin profile: %v", idt.UID, dErr), dErr)
		}
		return Admin{}, core.NewInternalError(err, "Failed to create admin")
	}
	return a, nil
}

// Delete removes the admin profile, then the account. Admins cannot delete themselves.
func (svc *Service) Delete(ctx context.Context, actorID, uid string) error {
	if uid == "" {
		return core.NewBadRequestError("Admin id is required")
	}
	if actorID == uid {
		return core.NewBadRequestError("You cannot delete yourself")
	}
	if _, err := svc.GetByID(ctx, uid); err != nil {
		return err
	}

	if err := svc.repo.DeleteAdmin(ctx, uid); err != nil && !errors.Is(err, ErrNotFound) {
		return core.NewInternalError(err, "Failed to delete admin")
	}
	if err := svc.identities.DeleteUser(ctx, uid); err != nil && !errors.Is(err, core.ErrNoIdentity) {
		return core.NewInternalError(err, "Failed to delete admin account")
	}
	return nil
}
