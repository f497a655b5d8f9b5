package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/festify/console/core/admin"
)

type (
	adminRecord struct {
		Username string `firestore:"username" validate:"required"`
	}

	AdminRepository struct {
		client   *firestore.Client
		validate *validator.Validate
	}
)

var _ admin.Repository = (*AdminRepository)(nil)

func NewAdminRepository(client *firestore.Client, validate *validator.Validate) *AdminRepository {
	return &AdminRepository{client: client, validate: validate}
}

func (repo *AdminRepository) admins() *firestore.CollectionRef {
	return repo.client.Collection(adminCollection)
}

func (repo *AdminRepository) QueryAdmins(ctx context.Context) ([]admin.Admin, error) {
	snaps, err := repo.admins().Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "querying admins")
	}
	admins := make([]admin.Admin, 0, len(snaps))
	for _, snap := range snaps {
		var rec adminRecord
		if err := decode(repo.validate, snap, &rec); err != nil {
			return nil, err
		}
		admins = append(admins, admin.Admin{ID: snap.Ref.ID, Username: rec.Username})
	}
	return admins, nil
}

func (repo *AdminRepository) GetAdmin(ctx context.Context, uid string) (admin.Admin, error) {
	if uid == "" {
		return admin.Admin{}, admin.ErrNotFound
	}
	snap, err := repo.admins().Doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return admin.Admin{}, admin.ErrNotFound
		}
		return admin.Admin{}, errors.Wrap(err, "getting admin")
	}
	var rec adminRecord
	if err := decode(repo.validate, snap, &rec); err != nil {
		return admin.Admin{}, err
	}
	return admin.Admin{ID: snap.Ref.ID, Username: rec.Username}, nil
}

func (repo *AdminRepository) CreateAdmin(ctx context.Context, a admin.Admin) error {
	if _, err := repo.admins().Doc(a.ID).Set(ctx, adminRecord{Username: a.Username}); err != nil {
		return errors.Wrap(err, "creating admin")
	}
	return nil
}

func (repo *AdminRepository) DeleteAdmin(ctx context.Context, uid string) error {
	if _, err := repo.admins().Doc(uid).Delete(ctx); err != nil {
		return errors.Wrap(err, "deleting admin")
	}
	return nil
}
