package core

import (
	"context"
	"errors"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrEmailExists  = errors.New("an account with this email already exists")
	ErrNoIdentity   = errors.New("identity not found")
	ErrInvalidImage = errors.New("invalid image data")
)

// NewUploadError maps a BlobStore.Upload failure onto the error taxonomy.
func NewUploadError(err error) error {
	if errors.Is(err, ErrInvalidImage) {
		return &Error{Code: CodeBadRequest, Message: "Invalid image data", Err: err}
	}
	return NewInternalError(err, "Failed to upload image to storage")
}

type (
	// BlobStore keeps images and hands out durable download URLs for them.
	BlobStore interface {
		// Upload stores a base64 or data-URL payload under dir and returns its durable URL.
		// A payload that already is a durable URL is returned unchanged.
		Upload(ctx context.Context, dir, payload string) (string, error)
		// Delete removes the blob behind a durable URL. A missing blob is not an error.
		Delete(ctx context.Context, url string) error
		// Check returns ErrInvalidImage if payload is neither a durable URL nor a decodable image.
		// It does no I/O, so callers run it before touching stored blobs.
		Check(payload string) error
		// IsDurable reports whether s is a URL served by this store.
		IsDurable(s string) bool
	}

	Identity struct {
		UID         string
		Email       string
		DisplayName string
	}

	// IdentityProvider manages the accounts of the authentication provider.
	IdentityProvider interface {
		CreateUser(ctx context.Context, email, password, displayName string) (Identity, error)
		DeleteUser(ctx context.Context, uid string) error
		GetUser(ctx context.Context, uid string) (Identity, error)
		// ListUsers returns at most limit accounts (all of them if limit <= 0).
		ListUsers(ctx context.Context, limit int) ([]Identity, error)
	}

	// TokenVerifier resolves a bearer credential to the uid it was issued for.
	// It returns ErrTokenExpired or ErrTokenInvalid for rejected credentials.
	TokenVerifier interface {
		VerifyToken(ctx context.Context, token string) (string, error)
	}

	PushMessage struct {
		Title string
		Body  string
	}

	// PushService delivers a push notification to devices.
	PushService interface {
		// Push sends msg to every valid token; malformed tokens are skipped.
		Push(ctx context.Context, tokens []string, msg PushMessage) error
	}
)
