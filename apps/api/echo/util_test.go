package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/festify/console/apps/api/echo"
	"github.com/festify/console/core"
	"github.com/festify/console/tests"
)

type httpErr struct {
	Code   core.ErrorCode    `json:"code"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type message struct {
	Message string `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

var (
	ctx = context.Background()

	errMissingToken = httpErr{Code: core.CodeUnauthorized, Error: "Authentication token not provided"}
	errInvalidToken = httpErr{Code: core.CodeUnauthorized, Error: "Invalid authentication token"}
	errExpiredToken = httpErr{Code: core.CodeUnauthorized, Error: "Authentication token expired"}
	errNotAnAdmin   = httpErr{Code: core.CodeUnauthorized, Error: "User is not an admin"}
)

// setup returns a server over a fresh in-memory environment, with an admin and their token.
func setup(t *testing.T) (*testutil.Env, *echoapi.Server, string) {
	t.Helper()
	env := testutil.NewEnv(t)
	app := echoapi.NewServer(env.Conf, echoapi.Deps{
		Logger:          env.Logger,
		Translator:      env.Translator,
		Verifier:        env.Tokens,
		TimelineSvc:     env.TimelineSvc,
		LessonSvc:       env.LessonSvc,
		RewardSvc:       env.RewardSvc,
		UserSvc:         env.UserSvc,
		AdminSvc:        env.AdminSvc,
		EmailSvc:        env.EmailSvc,
		NotificationSvc: env.NotificationSvc,
		HomeSvc:         env.HomeSvc,
	})
	_, token := env.CreateAdmin(t, "root")
	return env, app, token
}

func rpc(method string, query ...string) string {
	p := "/rpc/" + method
	if len(query) > 0 {
		v := make(url.Values)
		for i := 0; i+1 < len(query); i += 2 {
			v.Set(query[i], query[i+1])
		}
		p += "?" + v.Encode()
	}
	return p
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// do sends an authenticated request and returns the recorded response.
func do(t *testing.T, app *echoapi.Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var data []byte
	if body != nil {
		data = marshallObj(t, body)
	}
	req, rec := newAuthRequest(method, path, token, data)
	app.ServeHTTP(rec, req)
	return rec
}

func runHTTPTests(t *testing.T, app *echoapi.Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshall() failed: %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
