package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/festify/console/apps/api/echo"
	"github.com/festify/console/core"
	"github.com/festify/console/core/lesson"
	"github.com/festify/console/core/reward"
	"github.com/festify/console/tests"
)

func Test_lessonApi_create(t *testing.T) {
	env, app, token := setup(t)

	rec := do(t, app, http.MethodPost, rpc("lesson.createLesson"), token, echoapi.CreateLessonRequest{
		Season: core.Spring,
		Lesson: lesson.NewLesson{CelebratedOn: "Apr 1", Thumbnail: testutil.Image(), HolidayName: "April Fools", XPReward: 5},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created echoapi.CreateLessonResponse
	unmarshall(t, rec, &created)
	assert.Equal(t, "Lesson was created successfully", created.Message)
	assert.NotEmpty(t, created.ID)

	lessons, err := env.LessonSvc.QueryBySeason(ctx, core.Spring)
	require.NoError(t, err)

	runHTTPTests(t, app, []httpTest{
		{
			name: "missing name", method: http.MethodPost, path: rpc("lesson.createLesson"), token: token,
			body: marshallObj(t, echoapi.CreateLessonRequest{
				Season: core.Spring,
				Lesson: lesson.NewLesson{CelebratedOn: "Apr 1", Thumbnail: testutil.Image()},
			}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Code:   core.CodeBadRequest,
				Error:  "this field is required",
				Fields: map[string]string{"holiday_name": "this field is required"},
			}),
		},
		{
			name: "invalid image", method: http.MethodPost, path: rpc("lesson.createLesson"), token: token,
			body: marshallObj(t, echoapi.CreateLessonRequest{
				Season: core.Spring,
				Lesson: lesson.NewLesson{CelebratedOn: "Apr 1", Thumbnail: "nope", HolidayName: "X"},
			}),
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Code: core.CodeBadRequest, Error: "Invalid image data"}),
		},
		{
			name: "by season", path: rpc("lesson.getLessonsBySeason", "season", "spring"), token: token,
			wantCode: http.StatusOK, wantData: marshallObj(t, echoapi.LessonsResponse{Lessons: lessons}),
		},
		{
			name: "empty season", path: rpc("lesson.getLessonsBySeason", "season", "autumn"), token: token,
			wantCode: http.StatusOK, wantData: []byte(`{"lessons":[]}`),
		},
		{
			name: "by id (not found)", path: rpc("lesson.getLessonById", "season", "spring", "lessonId", "nope"), token: token,
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Code: core.CodeNotFound, Error: "Lesson not found"}),
		},
	})
}

func Test_lessonApi_lifecycle(t *testing.T) {
	env, app, token := setup(t)
	l := env.CreateLesson(t, core.Winter, "Xmas")
	req := echoapi.LessonRequest{Season: core.Winter, LessonID: l.ID}

	// general info
	rec := do(t, app, http.MethodPost, rpc("lesson.updateLessonGeneralInfo"), token, echoapi.UpdateGeneralInfoRequest{
		LessonRequest: req,
		GeneralInfo:   lesson.GeneralInfo{HolidayName: "Christmas", XPReward: 40},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tl, err := env.TimelineSvc.Get(ctx, core.Winter)
	require.NoError(t, err)
	assert.Equal(t, "Christmas", tl.Holidays[0].Name)

	// content
	rec = do(t, app, http.MethodPost, rpc("lesson.updateLessonContent"), token, map[string]interface{}{
		"season":   "winter",
		"lessonId": l.ID,
		"content": map[string]interface{}{
			"page1": []map[string]string{{"type": "text", "value": "Ho ho ho"}},
			"page0": []map[string]string{{"type": "image", "value": testutil.Image()}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var content struct {
		Message string                         `json:"message"`
		Content map[string][]map[string]string `json:"content"`
	}
	unmarshall(t, rec, &content)
	assert.Equal(t, "Lesson was updated successfully", content.Message)
	assert.Equal(t, []map[string]string{{"type": "text", "value": "Ho ho ho"}}, content.Content["page1"])
	require.Len(t, content.Content["page0"], 1)
	assert.True(t, env.Blobs.Has(content.Content["page0"][0]["value"]))

	// questions
	runHTTPTests(t, app, []httpTest{
		{
			name: "questions", method: http.MethodPost, path: rpc("lesson.updateLessonQuestions"), token: token,
			body: marshallObj(t, echoapi.UpdateQuestionsRequest{
				LessonRequest: req,
				Questions:     []lesson.Question{{Title: "Who?", Answer: 0, Choices: []string{"Santa", "Rudolph"}}},
			}),
			wantCode: http.StatusOK, wantData: marshallObj(t, message{"Lesson was updated successfully"}),
		},
	})

	req2, rec2 := newAuthRequest(http.MethodPost, rpc("lesson.updateLessonContent"), token,
		[]byte(`{"season":"winter","lessonId":"`+l.ID+`","content":{"page0":[{"type":"video","value":"x"}]}}`))
	app.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusBadRequest, rec2.Code, "unknown block type")

	// reward
	rec = do(t, app, http.MethodPost, rpc("lesson.createLessonReward"), token, echoapi.CreateLessonRewardRequest{
		LessonRequest: req,
		Reward:        reward.NewReward{Name: "Snowman", Thumbnail: testutil.Image()},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created echoapi.LessonRewardResponse
	unmarshall(t, rec, &created)
	assert.Equal(t, "Reward was created successfully", created.Message)
	assert.Equal(t, "Snowman", created.Reward.Name)

	d, err := env.LessonSvc.GetByID(ctx, core.Winter, l.ID)
	require.NoError(t, err)
	runHTTPTests(t, app, []httpTest{
		{
			name: "by id", path: rpc("lesson.getLessonById", "season", "winter", "lessonId", l.ID), token: token,
			wantCode: http.StatusOK, wantData: marshallObj(t, d),
		},
		{
			name: "second reward", method: http.MethodPost, path: rpc("lesson.createLessonReward"), token: token,
			body: marshallObj(t, echoapi.CreateLessonRewardRequest{
				LessonRequest: req,
				Reward:        reward.NewReward{Name: "Sled", Thumbnail: testutil.Image()},
			}),
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Code: core.CodeBadRequest, Error: "Lesson already has a reward"}),
		},
		{
			name: "delete reward", method: http.MethodPost, path: rpc("lesson.deleteLessonReward"), token: token,
			body:     marshallObj(t, echoapi.DeleteLessonRewardRequest{LessonRequest: req, RewardID: created.Reward.ID}),
			wantCode: http.StatusOK, wantData: marshallObj(t, message{"Reward was deleted successfully"}),
		},
		{
			name: "delete lesson", method: http.MethodPost, path: rpc("lesson.deleteLessonById"), token: token,
			body:     marshallObj(t, req),
			wantCode: http.StatusOK, wantData: marshallObj(t, message{"Lesson was deleted successfully"}),
		},
		{
			name: "delete lesson again", method: http.MethodPost, path: rpc("lesson.deleteLessonById"), token: token,
			body:     marshallObj(t, req),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Code: core.CodeNotFound, Error: "Lesson not found"}),
		},
	})

	assert.Zero(t, env.Blobs.Len())
}
