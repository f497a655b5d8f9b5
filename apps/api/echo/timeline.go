package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core/timeline"
)

type timelineApi struct {
	svc timeline.ServiceInterface
}

func registerTimelineAPI(g *echo.Group, svc timeline.ServiceInterface) {
	api := timelineApi{svc: svc}

	g.GET("/timeline.getSeasonTimeline", api.getSeasonTimeline)
	g.POST("/timeline.updateHoliday", api.updateHoliday)
}

func (api *timelineApi) getSeasonTimeline(ctx echo.Context) error {
	var data SeasonRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SeasonRequest")
	}

	tl, err := api.svc.Get(ctx.Request().Context(), data.Season)
	if err != nil {
		return err
	}
	if tl.Holidays == nil {
		tl.Holidays = []timeline.Holiday{}
	}
	return ctx.JSON(http.StatusOK, SeasonTimelineResponse{Holidays: tl.Holidays})
}

func (api *timelineApi) updateHoliday(ctx echo.Context) error {
	var data UpdateHolidayRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateHolidayRequest")
	}

	if err := api.svc.UpdateHoliday(ctx.Request().Context(), data.Season, data.Index, data.Holiday); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Holiday updated successfully"})
}
