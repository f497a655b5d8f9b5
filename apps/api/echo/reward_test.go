package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/festify/console/apps/api/echo"
	"github.com/festify/console/core"
	"github.com/festify/console/core/reward"
	"github.com/festify/console/tests"
)

func Test_rewardApi(t *testing.T) {
	env, app, token := setup(t)

	rec := do(t, app, http.MethodPost, rpc("reward.createReward"), token, reward.NewReward{Name: "Pumpkin", Thumbnail: testutil.Image()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var r reward.Reward
	unmarshall(t, rec, &r)
	assert.Equal(t, "Pumpkin", r.Name)
	assert.True(t, env.Blobs.Has(r.Thumbnail))

	runHTTPTests(t, app, []httpTest{
		{
			name: "get", path: rpc("reward.getRewardById", "id", r.ID), token: token,
			wantCode: http.StatusOK, wantData: marshallObj(t, r),
		},
		{
			name: "get (not found)", path: rpc("reward.getRewardById", "id", "nope"), token: token,
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Code: core.CodeNotFound, Error: "Reward not found"}),
		},
		{
			name: "create (missing name)", method: http.MethodPost, path: rpc("reward.createReward"), token: token,
			body:     marshallObj(t, reward.NewReward{Thumbnail: testutil.Image()}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Code:   core.CodeBadRequest,
				Error:  "this field is required",
				Fields: map[string]string{"name": "this field is required"},
			}),
		},
		{
			name: "rename", method: http.MethodPost, path: rpc("reward.updateRewardById"), token: token,
			body:     marshallObj(t, echoapi.UpdateRewardRequest{ID: r.ID, Reward: reward.UpdateReward{Name: "Jack"}}),
			wantCode: http.StatusOK, wantData: marshallObj(t, reward.Reward{ID: r.ID, Name: "Jack", Thumbnail: r.Thumbnail}),
		},
	})

	rec = do(t, app, http.MethodPost, rpc("reward.updateRewardById"), token, echoapi.UpdateRewardRequest{
		ID:     r.ID,
		Reward: reward.UpdateReward{Thumbnail: testutil.Image()},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated reward.Reward
	unmarshall(t, rec, &updated)
	assert.False(t, env.Blobs.Has(r.Thumbnail))
	assert.True(t, env.Blobs.Has(updated.Thumbnail))

	runHTTPTests(t, app, []httpTest{
		{
			name: "delete", method: http.MethodPost, path: rpc("reward.deleteRewardById"), token: token,
			body:     marshallObj(t, echoapi.IDRequest{ID: r.ID}),
			wantCode: http.StatusOK, wantData: marshallObj(t, message{"Reward was deleted successfully"}),
		},
		{
			name: "delete again", method: http.MethodPost, path: rpc("reward.deleteRewardById"), token: token,
			body:     marshallObj(t, echoapi.IDRequest{ID: r.ID}),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Code: core.CodeNotFound, Error: "Reward not found"}),
		},
	})
	assert.Zero(t, env.Blobs.Len())
}
