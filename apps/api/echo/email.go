package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core/email"
)

type emailApi struct {
	svc email.ServiceInterface
}

func registerEmailAPI(g *echo.Group, svc email.ServiceInterface) {
	api := emailApi{svc: svc}

	g.GET("/email.searchEmailAddresses", api.search)
	g.POST("/email.sendEmail", api.send)
}

func (api *emailApi) search(ctx echo.Context) error {
	var data SearchRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SearchRequest")
	}

	addrs, err := api.svc.SearchAddresses(ctx.Request().Context(), data.Term)
	if err != nil {
		return err
	}
	if addrs == nil {
		addrs = []string{}
	}
	return ctx.JSON(http.StatusOK, addrs)
}

func (api *emailApi) send(ctx echo.Context) error {
	var data email.Email
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Email")
	}

	if err := api.svc.Send(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Email sent successfully"})
}
