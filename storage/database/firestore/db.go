package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/festify/console/core"
	"github.com/festify/console/services/gcp"
)

const (
	timelineCollection = "seasons_timeline"
	holidayCollection  = "seasons_holidays"
	lessonCollection   = "lessons"
	rewardCollection   = "rewards"
	userCollection     = "users"
	adminCollection    = "admins"
)

// Open connects to the project's Cloud Firestore database.
func Open(ctx context.Context, conf *core.Config) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, conf.Firebase.ProjectID, gcp.ClientOptions(conf)...)
	if err != nil {
		return nil, errors.Wrap(err, "opening firestore")
	}
	return client, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// decode reads a snapshot into rec and validates it, so malformed documents never reach the services.
func decode(validate *validator.Validate, snap *firestore.DocumentSnapshot, rec interface{}) error {
	if err := snap.DataTo(rec); err != nil {
		return errors.Wrapf(err, "decoding %s", snap.Ref.Path)
	}
	if err := validate.Struct(rec); err != nil {
		return errors.Wrapf(err, "malformed document %s", snap.Ref.Path)
	}
	return nil
}
