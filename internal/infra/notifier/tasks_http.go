//go:build !gcloud

package notifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/logging"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
)

const defaultRetryDelay = 100 * time.Millisecond

// TasksNotifier registers each notification as an HTTP task with a
// Cloud Tasks compatible queue service.
type TasksNotifier struct {
	baseURL    string
	queueName  string
	targetURL  string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

func NewTasksNotifier(baseURL, queueName, targetURL string, maxRetries int) *TasksNotifier {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &TasksNotifier{
		baseURL:   strings.TrimRight(baseURL, "/"),
		queueName: queueName,
		targetURL: targetURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
	}
}

func (c *TasksNotifier) Publish(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(NewPayload(notification))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	taskReq := TaskRequest{
		Task: Task{
			Name: TaskID(notification.DedupeKey),
			HTTPRequest: HTTPRequest{
				URL:  c.targetURL,
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	reqBody, err := json.Marshal(taskReq)
	if err != nil {
		return fmt.Errorf("failed to marshal task request: %w", err)
	}

	url := fmt.Sprintf("%s/tasks", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		url = fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "tasks.create", url)
	defer span.End()

	var resp *TaskResponse
	err = retry.Do(
		func() error {
			var doErr error
			resp, doErr = c.doRequest(ctx, url, reqBody, notification)
			return doErr
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.DebugContext(ctx, "retrying notification task registration",
				slog.String("kind", notification.Kind.String()),
				slog.Int("attempt", int(n)+2),
				slog.String("error", err.Error()),
			)
		}),
	)
	tracing.RecordResult(span, err)
	if err != nil {
		slog.ErrorContext(ctx, "all retries exhausted for notification task",
			slog.String("kind", notification.Kind.String()),
			slog.Int("max_retries", c.maxRetries),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to register notification task after %d attempts: %w", c.maxRetries, err)
	}

	slog.InfoContext(ctx, "notification task registered",
		slog.String("task_name", resp.Name),
		slog.String("kind", notification.Kind.String()),
	)
	return nil
}

func (c *TasksNotifier) doRequest(ctx context.Context, url string, reqBody []byte, notification domain.Notification) (*TaskResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to task queue",
			slog.String("kind", notification.Kind.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// An existing task with the same name means the alert was already queued.
	if resp.StatusCode == http.StatusConflict {
		slog.InfoContext(ctx, "notification task already exists",
			slog.String("dedupe_key", notification.DedupeKey),
		)
		return &TaskResponse{Name: TaskID(notification.DedupeKey)}, nil
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.WarnContext(ctx, "unexpected status code from task queue",
			slog.String("kind", notification.Kind.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Unrecoverable(err)
		}
		return nil, err
	}

	var taskResp TaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&taskResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &taskResp, nil
}

func (c *TasksNotifier) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
