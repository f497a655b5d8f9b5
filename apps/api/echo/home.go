package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/festify/console/core/home"
)

func registerHomeAPI(g *echo.Group, svc home.ServiceInterface) {
	g.GET("/home.getStatistics", func(ctx echo.Context) error {
		stats, err := svc.Statistics(ctx.Request().Context())
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, stats)
	})
}
