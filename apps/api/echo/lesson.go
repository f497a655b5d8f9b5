package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core/lesson"
)

type lessonApi struct {
	svc lesson.ServiceInterface
}

func registerLessonAPI(g *echo.Group, svc lesson.ServiceInterface) {
	api := lessonApi{svc: svc}

	g.GET("/lesson.getLessonsBySeason", api.getLessonsBySeason)
	g.GET("/lesson.getLessonById", api.getLessonByID)
	g.POST("/lesson.createLesson", api.createLesson)
	g.POST("/lesson.updateLessonGeneralInfo", api.updateGeneralInfo)
	g.POST("/lesson.updateLessonContent", api.updateContent)
	g.POST("/lesson.updateLessonQuestions", api.updateQuestions)
	g.POST("/lesson.createLessonReward", api.createReward)
	g.POST("/lesson.deleteLessonReward", api.deleteReward)
	g.POST("/lesson.deleteLessonById", api.deleteLesson)
}

func (api *lessonApi) getLessonsBySeason(ctx echo.Context) error {
	var data SeasonRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SeasonRequest")
	}

	lessons, err := api.svc.QueryBySeason(ctx.Request().Context(), data.Season)
	if err != nil {
		return err
	}
	if lessons == nil {
		lessons = []lesson.Summary{}
	}
	return ctx.JSON(http.StatusOK, LessonsResponse{Lessons: lessons})
}

func (api *lessonApi) getLessonByID(ctx echo.Context) error {
	var data LessonRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LessonRequest")
	}

	l, err := api.svc.GetByID(ctx.Request().Context(), data.Season, data.LessonID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) createLesson(ctx echo.Context) error {
	var data CreateLessonRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CreateLessonRequest")
	}

	l, err := api.svc.Create(ctx.Request().Context(), data.Season, data.Lesson)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, CreateLessonResponse{Message: "Lesson was created successfully", ID: l.ID})
}

func (api *lessonApi) updateGeneralInfo(ctx echo.Context) error {
	var data UpdateGeneralInfoRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGeneralInfoRequest")
	}

	if err := api.svc.UpdateGeneralInfo(ctx.Request().Context(), data.Season, data.LessonID, data.GeneralInfo); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Lesson was updated successfully"})
}

func (api *lessonApi) updateContent(ctx echo.Context) error {
	var data UpdateContentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateContentRequest")
	}

	content, err := api.svc.UpdateContent(ctx.Request().Context(), data.Season, data.LessonID, data.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, UpdateContentResponse{Message: "Lesson was updated successfully", Content: content})
}

func (api *lessonApi) updateQuestions(ctx echo.Context) error {
	var data UpdateQuestionsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuestionsRequest")
	}

	if err := api.svc.UpdateQuestions(ctx.Request().Context(), data.Season, data.LessonID, data.Questions); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Lesson was updated successfully"})
}

func (api *lessonApi) createReward(ctx echo.Context) error {
	var data CreateLessonRewardRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CreateLessonRewardRequest")
	}

	r, err := api.svc.CreateReward(ctx.Request().Context(), data.Season, data.LessonID, data.Reward)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LessonRewardResponse{Message: "Reward was created successfully", Reward: r})
}

func (api *lessonApi) deleteReward(ctx echo.Context) error {
	var data DeleteLessonRewardRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteLessonRewardRequest")
	}

	if err := api.svc.DeleteReward(ctx.Request().Context(), data.Season, data.LessonID, data.RewardID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Reward was deleted successfully"})
}

func (api *lessonApi) deleteLesson(ctx echo.Context) error {
	var data LessonRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LessonRequest")
	}

	if err := api.svc.Delete(ctx.Request().Context(), data.Season, data.LessonID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Lesson was deleted successfully"})
}
