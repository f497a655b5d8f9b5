package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core/user"
)

type userApi struct {
	svc user.ServiceInterface
}

func registerUserAPI(g *echo.Group, svc user.ServiceInterface) {
	api := userApi{svc: svc}

	g.GET("/user.getAllUsers", api.query)
	g.POST("/user.wipeUserData", api.wipe)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []user.Summary{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) wipe(ctx echo.Context) error {
	var data IDRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IDRequest")
	}

	if err := api.svc.Wipe(ctx.Request().Context(), data.ID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "User data wiped successfully"})
}
