package pushsvc_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
	pushsvc "github.com/festify/console/services/push"
	"github.com/festify/console/tests"
)

// fakeExpo answers the send and receipts endpoints, recording what it received.
type fakeExpo struct {
	mu           sync.Mutex
	sent         [][]map[string]string
	receiptCalls [][]string
	auth         string
	failTicket   string // token whose ticket is an error
	failReceipt  string // ticket id whose receipt is an error
}

func (f *fakeExpo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = r.Header.Get("Authorization")
	body, _ := io.ReadAll(r.Body)

	switch r.URL.Path {
	case "/--/api/v2/push/send":
		var msgs []map[string]string
		if err := json.Unmarshal(body, &msgs); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.sent = append(f.sent, msgs)
		data := make([]map[string]interface{}, 0, len(msgs))
		for i, m := range msgs {
			if m["to"] == f.failTicket {
				data = append(data, map[string]interface{}{
					"status": "error", "message": "not registered", "details": map[string]string{"error": "DeviceNotRegistered"},
				})
				continue
			}
			data = append(data, map[string]interface{}{"status": "ok", "id": fmt.Sprintf("t%d-%d", len(f.sent), i)})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	case "/--/api/v2/push/getReceipts":
		var req struct {
			IDs []string `json:"ids"`
		}
		_ = json.Unmarshal(body, &req)
		f.receiptCalls = append(f.receiptCalls, req.IDs)
		data := make(map[string]interface{}, len(req.IDs))
		for _, id := range req.IDs {
			if id == f.failReceipt {
				data[id] = map[string]interface{}{"status": "error", "message": "rate limited", "details": map[string]string{"error": "MessageRateExceeded"}}
				continue
			}
			data[id] = map[string]string{"status": "ok"}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newExpo(t *testing.T, fake http.Handler) (*pushsvc.ExpoService, *testutil.Logger) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	conf := core.NewTestConfig()
	conf.Expo.BaseURL = srv.URL
	conf.Expo.AccessToken = "expo-secret"
	logger := new(testutil.Logger)
	return pushsvc.NewExpoService(conf, logger), logger
}

func TestIsExpoPushToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]", true},
		{"ExpoPushToken[xxxxxxxxxxxxxxxxxxxxxx]", true},
		{"ExponentPushToken[]", false},
		{"fcm:abcdef", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, pushsvc.IsExpoPushToken(tt.token))
		})
	}
}

func TestExpoService_Push(t *testing.T) {
	fake := new(fakeExpo)
	svc, logger := newExpo(t, fake)

	tokens := make([]string, 0, 151)
	for i := range 150 {
		tokens = append(tokens, fmt.Sprintf("ExponentPushToken[%03d]", i))
	}
	tokens = append(tokens, "not-a-token")

	err := svc.Push(context.Background(), tokens, core.PushMessage{Title: "Hi", Body: "Hello"})
	require.NoError(t, err)

	require.Len(t, fake.sent, 2, "messages are sent by chunks of 100")
	assert.Len(t, fake.sent[0], 100)
	assert.Len(t, fake.sent[1], 50)
	assert.Equal(t, map[string]string{"to": "ExponentPushToken[000]", "title": "Hi", "body": "Hello", "sound": "default"}, fake.sent[0][0])
	assert.Equal(t, "Bearer expo-secret", fake.auth)

	require.Len(t, fake.receiptCalls, 1)
	assert.Len(t, fake.receiptCalls[0], 150)
	assert.Len(t, logger.Entries("warn"), 1, "invalid token is skipped with a warning")
}

func TestExpoService_Push_errors(t *testing.T) {
	t.Run("ticket error is skipped", func(t *testing.T) {
		fake := &fakeExpo{failTicket: "ExponentPushToken[b]"}
		svc, logger := newExpo(t, fake)
		err := svc.Push(context.Background(), []string{"ExponentPushToken[a]", "ExponentPushToken[b]"}, core.PushMessage{Body: "x"})
		require.NoError(t, err)
		// only the ticket with an id has a receipt
		require.Len(t, fake.receiptCalls, 1)
		assert.Equal(t, []string{"t1-0"}, fake.receiptCalls[0])
		require.Len(t, logger.Entries("warn"), 1)
		assert.Contains(t, logger.Entries("warn")[0].Msg, "DeviceNotRegistered")
	})

	t.Run("receipt error", func(t *testing.T) {
		fake := &fakeExpo{failReceipt: "t1-0"}
		svc, logger := newExpo(t, fake)
		err := svc.Push(context.Background(), []string{"ExponentPushToken[a]"}, core.PushMessage{Body: "x"})
		assert.ErrorContains(t, err, "rate limited")
		assert.NotEmpty(t, logger.Entries("error"))
	})

	t.Run("server down", func(t *testing.T) {
		svc, _ := newExpo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		err := svc.Push(context.Background(), []string{"ExponentPushToken[a]"}, core.PushMessage{Body: "x"})
		assert.Error(t, err)
	})

	t.Run("no valid token", func(t *testing.T) {
		fake := new(fakeExpo)
		svc, _ := newExpo(t, fake)
		require.NoError(t, svc.Push(context.Background(), []string{"nope"}, core.PushMessage{Body: "x"}))
		assert.Empty(t, fake.sent)
	})
}

func TestExpoService_Push_breakerOpens(t *testing.T) {
	var calls int
	var mu sync.Mutex
	svc, logger := newExpo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	for range 7 {
		assert.Error(t, svc.Push(context.Background(), []string{"ExponentPushToken[a]"}, core.PushMessage{Body: "x"}))
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, calls, "requests stop once the breaker is open")
	assert.NotEmpty(t, logger.Entries("warn"))
}
