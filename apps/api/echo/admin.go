package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core/admin"
)

type adminApi struct {
	svc admin.ServiceInterface
}

func registerAdminAPI(g *echo.Group, svc admin.ServiceInterface) {
	api := adminApi{svc: svc}

	g.GET("/admin.getAllAdmins", api.query)
	g.POST("/admin.createAdmin", api.create)
	g.POST("/admin.deleteAdmin", api.destroy)
}

func (api *adminApi) query(ctx echo.Context) error {
	admins, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	if admins == nil {
		admins = []admin.Admin{}
	}
	return ctx.JSON(http.StatusOK, admins)
}

func (api *adminApi) create(ctx echo.Context) error {
	var data admin.NewAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmin")
	}

	if _, err := api.svc.Create(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Admin created successfully"})
}

func (api *adminApi) destroy(ctx echo.Context) error {
	var data IDRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IDRequest")
	}

	if err := api.svc.Delete(ctx.Request().Context(), contextActor(ctx).ID, data.ID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Admin deleted successfully"})
}
