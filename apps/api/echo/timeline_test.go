package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/festify/console/apps/api/echo"
	"github.com/festify/console/core"
	"github.com/festify/console/core/timeline"
	"github.com/festify/console/tests"
)

func Test_timelineApi(t *testing.T) {
	env, app, token := setup(t)
	env.CreateLesson(t, core.Winter, "Christmas")

	tl, err := env.TimelineSvc.Get(ctx, core.Winter)
	require.NoError(t, err)

	runHTTPTests(t, app, []httpTest{
		{
			name: "get timeline", path: rpc("timeline.getSeasonTimeline", "season", "winter"), token: token,
			wantCode: http.StatusOK, wantData: marshallObj(t, echoapi.SeasonTimelineResponse{Holidays: tl.Holidays}),
		},
		{
			name: "get empty timeline", path: rpc("timeline.getSeasonTimeline", "season", "summer"), token: token,
			wantCode: http.StatusOK, wantData: []byte(`{"holidays":[]}`),
		},
		{
			name: "invalid season", path: rpc("timeline.getSeasonTimeline", "season", "monsoon"), token: token,
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Code: core.CodeBadRequest, Error: "Invalid season"}),
		},
		{
			name: "update holiday", method: http.MethodPost, path: rpc("timeline.updateHoliday"), token: token,
			body: marshallObj(t, echoapi.UpdateHolidayRequest{
				Season:  core.Winter,
				Holiday: timeline.UpdateHoliday{CelebratedOn: "Dec 24", Thumbnail: testutil.Image()},
			}),
			wantCode: http.StatusOK, wantData: marshallObj(t, message{"Holiday updated successfully"}),
		},
		{
			name: "update missing holiday", method: http.MethodPost, path: rpc("timeline.updateHoliday"), token: token,
			body: marshallObj(t, echoapi.UpdateHolidayRequest{
				Season:  core.Winter,
				Index:   3,
				Holiday: timeline.UpdateHoliday{CelebratedOn: "Dec 24"},
			}),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Code: core.CodeNotFound, Error: "Holiday not found"}),
		},
	})

	updated, err := env.TimelineSvc.Get(ctx, core.Winter)
	require.NoError(t, err)
	assert.Equal(t, "Dec 24", updated.Holidays[0].CelebratedOn)
	assert.NotEqual(t, tl.Holidays[0].Thumbnail, updated.Holidays[0].Thumbnail)
	assert.False(t, env.Blobs.Has(tl.Holidays[0].Thumbnail))
}
