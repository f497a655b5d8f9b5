package pushsvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/festify/console/core"
)

const (
	sendPath     = "/--/api/v2/push/send"
	receiptsPath = "/--/api/v2/push/getReceipts"

	maxMessagesPerRequest = 100
	maxReceiptsPerRequest = 300
)

var expoToken = regexp.MustCompile(`^Expo(nent)?PushToken\[.+\]$`)

// IsExpoPushToken reports whether token looks like an Expo push token.
func IsExpoPushToken(token string) bool {
	return expoToken.MatchString(token)
}

type (
	message struct {
		To    string `json:"to"`
		Title string `json:"title,omitempty"`
		Body  string `json:"body"`
		Sound string `json:"sound,omitempty"`
	}

	details struct {
		Error string `json:"error,omitempty"`
	}

	ticket struct {
		Status  string  `json:"status"`
		ID      string  `json:"id,omitempty"`
		Message string  `json:"message,omitempty"`
		Details details `json:"details,omitempty"`
	}

	receipt struct {
		Status  string  `json:"status"`
		Message string  `json:"message,omitempty"`
		Details details `json:"details,omitempty"`
	}

	apiError struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	sendResponse struct {
		Data   []ticket   `json:"data"`
		Errors []apiError `json:"errors,omitempty"`
	}

	receiptsResponse struct {
		Data   map[string]receipt `json:"data"`
		Errors []apiError         `json:"errors,omitempty"`
	}
)

// ExpoService sends push notifications through the Expo push API and checks their delivery receipts.
type ExpoService struct {
	baseURL     string
	accessToken string
	client      *http.Client
	breaker     *gobreaker.CircuitBreaker[[]byte]
	logger      core.Logger
}

var _ core.PushService = (*ExpoService)(nil)

func NewExpoService(conf *core.Config, logger core.Logger) *ExpoService {
	timeout := conf.Expo.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := strings.TrimRight(conf.Expo.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://exp.host"
	}

	settings := gobreaker.Settings{
		Name:        "expo-push",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(fmt.Sprintf("circuit breaker %s: %s -> %s", name, from, to))
		},
	}

	return &ExpoService{
		baseURL:     baseURL,
		accessToken: conf.Expo.AccessToken,
		client:      &http.Client{Timeout: timeout},
		breaker:     gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:      logger,
	}
}

// Push sends msg to every valid token, then fails if any receipt reports an error.
// Tickets without an id have no receipt to check and are only logged.
func (svc *ExpoService) Push(ctx context.Context, tokens []string, msg core.PushMessage) error {
	messages := make([]message, 0, len(tokens))
	for _, tok := range tokens {
		if !IsExpoPushToken(tok) {
			svc.logger.Warn(fmt.Sprintf("push token %s is not a valid Expo push token", tok))
			continue
		}
		messages = append(messages, message{To: tok, Title: msg.Title, Body: msg.Body, Sound: "default"})
	}

	receiptIDs := make([]string, 0, len(messages))
	for _, chunk := range chunks(messages, maxMessagesPerRequest) {
		ids, err := svc.send(ctx, chunk)
		if err != nil {
			return err
		}
		receiptIDs = append(receiptIDs, ids...)
	}

	for _, chunk := range chunks(receiptIDs, maxReceiptsPerRequest) {
		if err := svc.checkReceipts(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (svc *ExpoService) send(ctx context.Context, chunk []message) ([]string, error) {
	var res sendResponse
	if err := svc.post(ctx, sendPath, chunk, &res); err != nil {
		return nil, errors.Wrap(err, "sending push notifications")
	}
	if len(res.Errors) > 0 {
		return nil, errors.Errorf("sending push notifications: %s: %s", res.Errors[0].Code, res.Errors[0].Message)
	}

	ids := make([]string, 0, len(res.Data))
	for _, t := range res.Data {
		if t.Status == "error" {
			svc.logger.Warn(fmt.Sprintf("push ticket error: %s (%s)", t.Message, t.Details.Error))
		}
		if t.ID != "" {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (svc *ExpoService) checkReceipts(ctx context.Context, ids []string) error {
	var res receiptsResponse
	if err := svc.post(ctx, receiptsPath, map[string][]string{"ids": ids}, &res); err != nil {
		return errors.Wrap(err, "fetching push receipts")
	}
	if len(res.Errors) > 0 {
		return errors.Errorf("fetching push receipts: %s: %s", res.Errors[0].Code, res.Errors[0].Message)
	}
	for id, r := range res.Data {
		if r.Status == "error" {
			if r.Details.Error != "" {
				svc.logger.Error(fmt.Sprintf("push receipt %s: the error code is %s", id, r.Details.Error))
			}
			return errors.Errorf("push receipt %s: %s", id, r.Message)
		}
	}
	return nil
}

func (svc *ExpoService) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encoding request")
	}

	resBody, err := svc.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if svc.accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+svc.accessToken)
		}

		res, err := svc.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		data, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, err
		}
		if res.StatusCode >= http.StatusInternalServerError {
			return nil, errors.Errorf("status %d: %s", res.StatusCode, data)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resBody, out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

func chunks[T any](items []T, size int) [][]T {
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
