package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core/reward"
)

type rewardApi struct {
	svc reward.ServiceInterface
}

func registerRewardAPI(g *echo.Group, svc reward.ServiceInterface) {
	api := rewardApi{svc: svc}

	g.GET("/reward.getRewardById", api.retrieve)
	g.POST("/reward.createReward", api.create)
	g.POST("/reward.updateRewardById", api.update)
	g.POST("/reward.deleteRewardById", api.destroy)
}

func (api *rewardApi) retrieve(ctx echo.Context) error {
	var data IDRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IDRequest")
	}

	r, err := api.svc.GetByID(ctx.Request().Context(), data.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *rewardApi) create(ctx echo.Context) error {
	var data reward.NewReward
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReward")
	}

	r, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *rewardApi) update(ctx echo.Context) error {
	var data UpdateRewardRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRewardRequest")
	}

	r, err := api.svc.Update(ctx.Request().Context(), data.ID, data.Reward)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *rewardApi) destroy(ctx echo.Context) error {
	var data IDRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IDRequest")
	}

	if err := api.svc.Delete(ctx.Request().Context(), data.ID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Reward was deleted successfully"})
}
