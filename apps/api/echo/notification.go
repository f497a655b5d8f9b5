package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core/notification"
)

type notificationApi struct {
	svc notification.ServiceInterface
}

func registerNotificationAPI(g *echo.Group, svc notification.ServiceInterface) {
	api := notificationApi{svc: svc}

	g.POST("/notification.sendNotification", api.send)
}

func (api *notificationApi) send(ctx echo.Context) error {
	var data notification.Notification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Notification")
	}

	if err := api.svc.Send(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Notifications sent successfully"})
}
