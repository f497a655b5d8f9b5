package echoapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/festify/console/core"
)

func TestServer_misc(t *testing.T) {
	_, app, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to the Festify console API!", rec.Body.String())

	req, rec = newRequest(http.MethodGet, "/metrics")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console_http_requests_total")

	runHTTPTests(t, app, []httpTest{
		{name: "health", path: "/healthz", wantCode: http.StatusOK, wantData: []byte(`{"status":"ok"}`)},
		{name: "trailing slash", path: "/healthz/", wantCode: http.StatusOK, wantData: []byte(`{"status":"ok"}`)},
		{
			name: "unknown route", path: "/nope", wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Code: core.CodeNotFound, Error: "Not Found"}),
		},
	})
}

func TestServer_auth(t *testing.T) {
	env, app, token := setup(t)

	stranger, err := env.Tokens.IssueToken("not-an-admin")
	if err != nil {
		t.Fatal(err)
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "whoever",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte(env.Conf.Auth.LocalSigningKey))
	if err != nil {
		t.Fatal(err)
	}

	path := rpc("home.getStatistics")
	runHTTPTests(t, app, []httpTest{
		{name: "missing token", path: path, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "invalid token", path: path, token: "abc", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errInvalidToken)},
		{name: "expired token", path: path, token: expired, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errExpiredToken)},
		{name: "not an admin", path: path, token: stranger, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errNotAnAdmin)},
		{name: "admin", path: path, token: token, wantCode: http.StatusOK, wantData: []byte(`{"total_users":1,"total_lessons":0}`)},
	})

	// the Bearer scheme is optional
	req, rec := newRequest(http.MethodGet, path)
	req.Header.Set("Authorization", token)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_badJSON(t *testing.T) {
	_, app, token := setup(t)

	req, rec := newAuthRequest(http.MethodPost, rpc("reward.createReward"), token, []byte(`{"name": 12`))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res httpErr
	unmarshall(t, rec, &res)
	assert.Equal(t, core.CodeBadRequest, res.Code)
}
