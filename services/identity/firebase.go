package identitysvc

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/festify/console/core"
	"github.com/festify/console/services/gcp"
)

// FirebaseProvider manages the accounts of Firebase Authentication and verifies its ID tokens.
type FirebaseProvider struct {
	client *auth.Client
}

var (
	_ core.IdentityProvider = (*FirebaseProvider)(nil)
	_ core.TokenVerifier    = (*FirebaseProvider)(nil)
)

func NewFirebaseProvider(ctx context.Context, conf *core.Config) (*FirebaseProvider, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     conf.Firebase.ProjectID,
		StorageBucket: conf.Firebase.StorageBucket,
	}, gcp.ClientOptions(conf)...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase auth")
	}
	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	tok, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		switch {
		case auth.IsIDTokenExpired(err):
			return "", core.ErrTokenExpired
		case auth.IsIDTokenInvalid(err), auth.IsIDTokenRevoked(err):
			return "", errors.Wrap(core.ErrTokenInvalid, err.Error())
		}
		return "", errors.Wrap(err, "verifying firebase id token")
	}
	return tok.UID, nil
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password, displayName string) (core.Identity, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	rec, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return core.Identity{}, core.ErrEmailExists
		}
		return core.Identity{}, errors.Wrap(err, "creating firebase user")
	}
	return toIdentity(rec), nil
}

func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return core.ErrNoIdentity
		}
		return errors.Wrapf(err, "deleting firebase user %s", uid)
	}
	return nil
}

func (p *FirebaseProvider) GetUser(ctx context.Context, uid string) (core.Identity, error) {
	rec, err := p.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return core.Identity{}, core.ErrNoIdentity
		}
		return core.Identity{}, errors.Wrapf(err, "getting firebase user %s", uid)
	}
	return toIdentity(rec), nil
}

func (p *FirebaseProvider) ListUsers(ctx context.Context, limit int) ([]core.Identity, error) {
	ids := make([]core.Identity, 0)
	iter := p.client.Users(ctx, "")
	for limit <= 0 || len(ids) < limit {
		rec, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "listing firebase users")
		}
		ids = append(ids, toIdentity(rec.UserRecord))
	}
	return ids, nil
}

func toIdentity(rec *auth.UserRecord) core.Identity {
	if rec == nil || rec.UserInfo == nil {
		return core.Identity{}
	}
	return core.Identity{UID: rec.UID, Email: rec.Email, DisplayName: rec.DisplayName}
}
