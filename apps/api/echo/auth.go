package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core"
	"github.com/festify/console/core/admin"
)

const contextActorKey = "actor"

var (
	errTokenMissing = core.NewUnauthorizedError("Authentication token not provided")
	errTokenExpired = core.NewUnauthorizedError("Authentication token expired")
	errTokenInvalid = core.NewUnauthorizedError("Invalid authentication token")
	errNotAnAdmin   = core.NewUnauthorizedError("User is not an admin")
)

// bearerToken reads the credential from the Authorization header, with or without the Bearer scheme.
func bearerToken(ctx echo.Context) string {
	header := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// authMiddleware verifies the bearer credential, then checks that its uid has an admin profile.
func authMiddleware(verifier core.TokenVerifier, admins admin.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx)
			if token == "" {
				return errTokenMissing
			}

			uid, err := verifier.VerifyToken(ctx.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, core.ErrTokenExpired):
					return errTokenExpired
				case errors.Is(err, core.ErrTokenInvalid):
					return errTokenInvalid
				}
				return core.NewInternalError(err, "Failed to authenticate user")
			}

			adm, err := admins.GetByID(ctx.Request().Context(), uid)
			if err != nil {
				if core.ErrorCodeOf(err) == core.CodeNotFound {
					return errNotAnAdmin
				}
				return err
			}

			ctx.Set(contextActorKey, core.Actor{ID: adm.ID, Username: adm.Username, Email: adm.Email})
			return next(ctx)
		}
	}
}

func contextActor(ctx echo.Context) core.Actor {
	actor, _ := ctx.Get(contextActorKey).(core.Actor)
	return actor
}
