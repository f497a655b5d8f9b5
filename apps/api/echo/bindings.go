package echoapi

import (
	"github.com/festify/console/core"
	"github.com/festify/console/core/lesson"
	"github.com/festify/console/core/reward"
	"github.com/festify/console/core/timeline"
)

type (
	MessageResponse struct {
		Message string `json:"message"`
	}

	SeasonRequest struct {
		Season core.Season `json:"season" query:"season"`
	}

	IDRequest struct {
		ID string `json:"id" query:"id"`
	}

	SearchRequest struct {
		Term string `json:"term" query:"term"`
	}

	UpdateHolidayRequest struct {
		Season  core.Season            `json:"season"`
		Index   int                    `json:"index"`
		Holiday timeline.UpdateHoliday `json:"holiday"`
	}

	SeasonTimelineResponse struct {
		Holidays []timeline.Holiday `json:"holidays"`
	}

	LessonRequest struct {
		Season   core.Season `json:"season" query:"season"`
		LessonID string      `json:"lessonId" query:"lessonId"`
	}

	LessonsResponse struct {
		Lessons []lesson.Summary `json:"lessons"`
	}

	CreateLessonRequest struct {
		Season core.Season      `json:"season"`
		Lesson lesson.NewLesson `json:"lesson"`
	}

	CreateLessonResponse struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}

	UpdateGeneralInfoRequest struct {
		LessonRequest
		GeneralInfo lesson.GeneralInfo `json:"generalInfo"`
	}

	UpdateContentRequest struct {
		LessonRequest
		Content lesson.Content `json:"content"`
	}

	UpdateContentResponse struct {
		Message string         `json:"message"`
		Content lesson.Content `json:"content"`
	}

	UpdateQuestionsRequest struct {
		LessonRequest
		Questions []lesson.Question `json:"questions"`
	}

	CreateLessonRewardRequest struct {
		LessonRequest
		Reward reward.NewReward `json:"reward"`
	}

	LessonRewardResponse struct {
		Message string        `json:"message"`
		Reward  reward.Reward `json:"reward"`
	}

	DeleteLessonRewardRequest struct {
		LessonRequest
		RewardID string `json:"rewardId"`
	}

	UpdateRewardRequest struct {
		ID     string              `json:"id"`
		Reward reward.UpdateReward `json:"reward"`
	}
)
