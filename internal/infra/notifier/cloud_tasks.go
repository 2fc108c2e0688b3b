//go:build gcloud

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
)

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

// CloudTasksNotifier enqueues each notification as a Cloud Task named after
// its dedupe key, so a repeated alert is rejected by the queue.
type CloudTasksNotifier struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

func NewCloudTasksNotifier(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksNotifier, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksNotifier{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksNotifier) Publish(ctx context.Context, notification domain.Notification) error {
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		c.projectID, c.locationID, c.queueID)

	payload, err := json.Marshal(NewPayload(notification))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	cloudTask := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
		ScheduleTime: timestamppb.New(time.Now()),
	}
	if id := TaskID(notification.DedupeKey); id != "" {
		cloudTask.Name = fmt.Sprintf("%s/tasks/%s", queuePath, id)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   cloudTask,
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "cloudtasks.create", queuePath)
	defer span.End()

	err = retry.Do(
		func() error {
			return c.createTask(ctx, req, notification)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
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

	return nil
}

func (c *CloudTasksNotifier) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, notification domain.Notification) error {
	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		switch status.Code(err) {
		case codes.AlreadyExists:
			slog.InfoContext(ctx, "notification task already exists",
				slog.String("dedupe_key", notification.DedupeKey),
			)
			return nil
		case codes.InvalidArgument, codes.PermissionDenied, codes.NotFound:
			return retry.Unrecoverable(fmt.Errorf("failed to create cloud task: %w", err))
		}

		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("kind", notification.Kind.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "notification task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("kind", notification.Kind.String()),
	)
	return nil
}

func (c *CloudTasksNotifier) Close() error {
	return c.client.Close()
}
