//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Validate requires a complete Cloud Tasks queue; alerts have no other
// delivery path on Google Cloud.
func (c *TaskQueueConfig) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{env: "GCLOUD_PROJECT_ID", value: c.GCloudProjectID},
		{env: "GCLOUD_LOCATION_ID", value: c.GCloudLocationID},
		{env: "GCLOUD_QUEUE_ID", value: c.GCloudQueueID},
		{env: "GCLOUD_TARGET_URL", value: c.GCloudTargetURL},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.env))
		}
	}
	if c.MaxRetries <= 0 {
		errs = append(errs, errors.New("TASK_QUEUE_MAX_RETRIES must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
